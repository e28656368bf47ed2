// Package demoapp wires configuration and the marquee label into a small
// desktop window with transport-style controls.
package demoapp

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	config "github.com/edward-ap/marqueeview/internal/config"
	"github.com/edward-ap/marqueeview/internal/marquee"
	ui "github.com/edward-ap/marqueeview/internal/ui"
)

// App owns the fyne application, the window, the marquee and its controls.
type App struct {
	fa      fyne.App
	w       fyne.Window
	config  *config.Config
	cfgPath string

	label  *ui.MarqueeLabel
	ticker *ui.TickerController

	status    *widget.Label
	textEntry *widget.Entry
	modeGroup *widget.RadioGroup
	speedLbl  *widget.Label
	tickerBg  *canvas.Rectangle
}

// NewApp loads configuration from cfgPath (the per-user default when empty)
// and builds the window.
func NewApp(cfgPath string) *App {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Println("config load error:", err)
		cfg = config.Default()
	}

	fa := app.NewWithID(config.AppID)
	fa.Settings().SetTheme(theme.DarkTheme())
	w := fa.NewWindow("MarqueeView")
	w.Resize(fyne.NewSize(float32(cfg.WindowW), float32(cfg.WindowH)))

	a := &App{fa: fa, w: w, config: cfg, cfgPath: cfgPath}
	a.buildUI()

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		cfg.WindowW = int(sz.Width)
		cfg.WindowH = int(sz.Height)
		if err := a.saveConfig(); err != nil {
			log.Println("config save error:", err)
		}
		a.ticker.Close()
		w.Close()
		fa.Quit()
	})
	return a
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func (a *App) saveConfig() error { return a.saveConfigFrom(a.config) }

// saveConfigFrom writes cfg to the app's config location. Timers pass a copy
// taken on the UI thread so they never read a.config concurrently.
func (a *App) saveConfigFrom(cfg *config.Config) error {
	if strings.TrimSpace(a.cfgPath) == "" {
		return cfg.Save()
	}
	return cfg.SaveFile(a.cfgPath)
}

// Run shows the window, starts scrolling when the text overflows, and enters the fyne event loop.
func (a *App) Run() {
	a.w.Show()
	a.ticker.SetText(a.config.Text)
	a.fa.Run()
}

// buildUI lays out the marquee strip above the controls.
func (a *App) buildUI() {
	a.label = ui.NewMarqueeLabel(a.config.Text)
	if err := a.label.Apply(a.config.Marquee()); err != nil {
		// config.Load already clamps values, so this only fires on programming errors
		log.Println("marquee config rejected:", err)
	}
	a.label.SetFrameInterval(a.config.FrameInterval())
	a.ticker = ui.NewTickerController(a.label, nil)
	a.ticker.SetPlaceholder(config.DefaultText)
	a.label.OnResized = func(fyne.Size) { a.ticker.Refit() }

	a.status = widget.NewLabel(marquee.StatePaused.String())
	a.label.OnStateChanged = func(s marquee.State) {
		ui.CallOnMain(func() { a.status.SetText(s.String()) })
	}

	a.tickerBg = canvas.NewRectangle(color.NRGBA{0x00, 0x99, 0xFF, 0x40})
	strip := container.NewStack(a.tickerBg, container.NewPadded(a.label))

	a.w.SetContent(container.NewBorder(strip, nil, nil, nil, a.buildControls()))
}

// buildControls returns the transport buttons, mode, speed and text editors.
func (a *App) buildControls() fyne.CanvasObject {
	startBtn := widget.NewButtonWithIcon("Start", theme.MediaReplayIcon(), func() { a.label.Start() })
	resumeBtn := widget.NewButtonWithIcon("Resume", theme.MediaPlayIcon(), func() { a.label.Resume() })
	pauseBtn := widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { a.label.Pause() })
	stopBtn := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() { a.label.Stop() })
	transport := container.NewHBox(startBtn, resumeBtn, pauseBtn, stopBtn, widget.NewSeparator(), a.status)

	a.modeGroup = widget.NewRadioGroup([]string{marquee.ModeForever.String(), marquee.ModeOnce.String()}, func(v string) {
		a.setMode(v)
	})
	a.modeGroup.Horizontal = true
	a.modeGroup.SetSelected(a.config.Mode)

	a.speedLbl = widget.NewLabel("")
	speed := widget.NewSlider(1, 40)
	speed.Step = 1
	speed.Value = float64(a.config.Speed)
	a.updateSpeedLabel()
	var saveTimer *time.Timer
	speed.OnChanged = func(v float64) {
		if err := a.label.SetSpeed(int(v + 0.5)); err != nil {
			dialog.ShowError(err, a.w)
			return
		}
		a.config.Speed = a.label.Speed()
		a.updateSpeedLabel()
		if saveTimer != nil {
			saveTimer.Stop()
		}
		snapshot := *a.config
		saveTimer = time.AfterFunc(400*time.Millisecond, func() {
			if err := a.saveConfigFrom(&snapshot); err != nil {
				log.Println("config save error:", err)
			}
		})
	}

	a.textEntry = widget.NewEntry()
	a.textEntry.SetText(a.config.Text)
	a.textEntry.OnSubmitted = func(s string) { a.updateText(s) }
	apply := widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() { a.updateText(a.textEntry.Text) })
	bold := widget.NewCheck("Bold", func(on bool) {
		a.label.SetTextStyle(fyne.TextStyle{Bold: on})
		a.ticker.Refit()
	})

	form := container.NewVBox(
		transport,
		container.NewHBox(widget.NewLabel("Mode"), a.modeGroup, widget.NewSeparator(), bold),
		container.NewBorder(nil, nil, widget.NewLabel("Speed"), a.speedLbl, speed),
		container.NewBorder(nil, nil, widget.NewLabel("Text"), apply, a.textEntry),
	)
	return container.NewPadded(form)
}

func (a *App) setMode(v string) {
	mode, err := marquee.ParseMode(v)
	if err != nil {
		dialog.ShowError(err, a.w)
		return
	}
	if err := a.label.SetMode(mode); err != nil {
		dialog.ShowError(err, a.w)
		return
	}
	a.config.Mode = mode.String()
	_ = a.saveConfig()
}

func (a *App) updateSpeedLabel() {
	if a.speedLbl == nil {
		return
	}
	a.speedLbl.SetText(fmt.Sprintf("%d ms/char", a.config.Speed))
}

// updateText pushes new text through the ticker controller and flashes the
// strip background.
func (a *App) updateText(text string) {
	text = strings.TrimSpace(text)
	a.ticker.SetText(text)
	if text != "" {
		a.config.Text = text
		_ = a.saveConfig()
	}
	if a.tickerBg != nil {
		ui.CallOnMain(func() {
			a.tickerBg.FillColor = color.NRGBA{0x00, 0xCC, 0xFF, 0x60}
			a.tickerBg.Refresh()
		})
		time.AfterFunc(180*time.Millisecond, func() {
			ui.CallOnMain(func() {
				a.tickerBg.FillColor = color.NRGBA{0x00, 0x99, 0xFF, 0x40}
				a.tickerBg.Refresh()
			})
		})
	}
}
