package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/edward-ap/marqueeview/internal/config"
	"github.com/edward-ap/marqueeview/internal/marquee"
	"github.com/edward-ap/marqueeview/internal/tui"
)

const traceLogName = "marquee.log"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, runs the program and returns the process exit code, so
// deferred cleanup happens before main exits.
func run(args []string, stdout *os.File, stderr io.Writer) int {
	fs := flag.NewFlagSet("marqueetui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	trace := fs.Bool("traceLog", false, "log every marquee state transition to "+traceLogName)
	cfgPath := fs.String("config", "", "config file (.json, .yaml or .yml); defaults to the per-user config")
	text := fs.String("text", "", "text to scroll (overrides the config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !term.IsTerminal(int(stdout.Fd())) {
		fmt.Fprintln(stderr, "marqueetui: stdout is not a terminal")
		return 1
	}

	var logger marquee.Logger
	if *trace {
		l, closeLog, err := openTraceLog(traceLogName)
		if err != nil {
			fmt.Fprintln(stderr, "marqueetui:", err)
			return 1
		}
		defer closeLog()
		logger = l
		marquee.SetTraceLoggingEnabled(true)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Println("config load error:", err)
		cfg = config.Default()
	}
	if strings.TrimSpace(*text) != "" {
		cfg.Text = *text
	}

	err = tui.Run(tui.Options{
		Text:          cfg.Text,
		Marquee:       cfg.Marquee(),
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, "marqueetui:", err)
		return 1
	}
	return 0
}

// openTraceLog appends trace output to path. The alt screen owns stdout, so
// trace lines cannot go there.
func openTraceLog(path string) (*log.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "", log.LstdFlags|log.Lmicroseconds), f.Close, nil
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
