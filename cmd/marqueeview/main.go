package main

import (
	"flag"

	"github.com/edward-ap/marqueeview/internal/demoapp"
)

func main() {
	trace := flag.Bool("traceLog", false, "log every marquee state transition")
	cfgPath := flag.String("config", "", "config file (.json, .yaml or .yml); defaults to the per-user config")
	flag.Parse()
	demoapp.SetTraceLogEnabled(*trace)

	app := demoapp.NewApp(*cfgPath)
	app.Run()
}
