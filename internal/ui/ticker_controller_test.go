package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestTickerNeedsScroll(t *testing.T) {
	tests := []struct {
		name          string
		textWidth     float32
		viewportWidth float32
		want          bool
	}{
		{name: "fits exactly", textWidth: 120, viewportWidth: 120, want: false},
		{name: "slightly bigger but within epsilon", textWidth: 100.3, viewportWidth: 100, want: false},
		{name: "clearly needs scroll", textWidth: 150, viewportWidth: 120, want: true},
		{name: "negative viewport treated as zero", textWidth: 1, viewportWidth: -5, want: true},
		{name: "zero text width", textWidth: 0, viewportWidth: 200, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tickerNeedsScroll(tt.textWidth, tt.viewportWidth)
			if got != tt.want {
				t.Fatalf("tickerNeedsScroll(%v, %v) = %v, want %v", tt.textWidth, tt.viewportWidth, got, tt.want)
			}
		})
	}
}

func TestTickerControllerScrollsOnlyOnOverflow(t *testing.T) {
	test.NewApp()

	lbl := NewMarqueeLabel("")
	defer lbl.Close()
	lbl.Resize(fyne.NewSize(120, 30))
	tc := NewTickerController(lbl, nil)

	tc.SetText("short")
	if tc.Scrolling() {
		t.Fatal("short text should not scroll")
	}
	if !lbl.IsPaused() {
		t.Fatal("label running for short text")
	}

	long := "a considerably longer line of text that cannot possibly fit in the viewport"
	tc.SetText(long)
	if !tc.Scrolling() {
		t.Fatal("long text should scroll")
	}
	if lbl.Text() != long {
		t.Fatalf("label text = %q", lbl.Text())
	}
	if !lbl.Snapshot().FirstPass {
		t.Fatal("overflowing text should restart from the first pass")
	}

	tc.SetText("")
	if lbl.Text() != "Ready" {
		t.Fatalf("empty text shows %q, want placeholder", lbl.Text())
	}
	if tc.Scrolling() {
		t.Fatal("placeholder should not scroll")
	}
}

func TestTickerControllerRefitFollowsViewport(t *testing.T) {
	test.NewApp()

	lbl := NewMarqueeLabel("")
	defer lbl.Close()
	lbl.Resize(fyne.NewSize(5000, 30))
	tc := NewTickerController(lbl, nil)

	tc.SetText("a headline that only overflows a narrow window")
	if tc.Scrolling() {
		t.Fatal("text scrolls in a wide viewport")
	}

	lbl.Resize(fyne.NewSize(60, 30))
	tc.Refit()
	if !tc.Scrolling() {
		t.Fatal("narrowed viewport did not start scrolling")
	}
	if !lbl.Snapshot().FirstPass {
		t.Fatal("refit should restart from the first pass")
	}

	lbl.Resize(fyne.NewSize(5000, 30))
	tc.Refit()
	if tc.Scrolling() {
		t.Fatal("widened viewport kept scrolling")
	}
	if got := lbl.Snapshot().Offset; got != 0 {
		t.Fatalf("offset after widening = %v, want 0", got)
	}
}
