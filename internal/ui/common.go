// Package ui contains the fyne host for the marquee session plus small helpers
// shared across the app.
package ui

import "fyne.io/fyne/v2"

type runOnMainDriver interface {
	RunOnMain(func())
}

type callOnMainDriver interface {
	CallOnMain(func())
}

// CallOnMain dispatches f onto the UI thread if the current Fyne driver
// supports it; otherwise executes f inline (best-effort fallback).
func CallOnMain(f func()) {
	if f == nil {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		f()
		return
	}
	drv := app.Driver()
	if drv == nil {
		f()
		return
	}
	if r, ok := drv.(runOnMainDriver); ok {
		r.RunOnMain(f)
		return
	}
	if c, ok := drv.(callOnMainDriver); ok {
		c.CallOnMain(f)
		return
	}
	f()
}

const tickerWidthEpsilon float32 = 0.5

// tickerNeedsScroll decides whether marquee scrolling is required.
func tickerNeedsScroll(textWidth, viewportWidth float32) bool {
	if textWidth <= 0 {
		return false
	}
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	return textWidth-viewportWidth > tickerWidthEpsilon
}
