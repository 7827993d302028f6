package curtain

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Rect is an axis-aligned rectangle with its origin at the top-left and Y
// increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Overlay is the stock loading screen: a full-screen backdrop, a progress bar
// and, for manual activation, a continue button. It implements Target.
// Call Update and Draw from the game loop, after the orchestrator advanced.
type Overlay struct {
	NopHooks

	// Bounds covers the screen area the overlay darkens.
	Bounds     Rect
	Background color.RGBA
	BarColor   color.RGBA
	// Bar is the progress bar's full extent; the fill grows from its left edge.
	Bar Rect
	// ButtonBounds is the clickable area of the continue button.
	ButtonBounds Rect
	Label        string
	ButtonLabel  string

	opacity    float64
	active     bool
	fill       float64
	showButton bool
	button     Button
	pixel      *ebiten.Image
}

// NewOverlay returns an overlay sized for a width x height screen.
func NewOverlay(width, height int) *Overlay {
	w, h := float64(width), float64(height)
	return &Overlay{
		Bounds:       Rect{Width: w, Height: h},
		Background:   color.RGBA{R: 12, G: 12, B: 18, A: 255},
		BarColor:     color.RGBA{R: 90, G: 200, B: 255, A: 255},
		Bar:          Rect{X: w * 0.2, Y: h*0.5 - 6, Width: w * 0.6, Height: 12},
		ButtonBounds: Rect{X: w*0.5 - 60, Y: h*0.5 + 30, Width: 120, Height: 28},
		Label:        "Loading",
		ButtonLabel:  "Continue",
	}
}

func (ov *Overlay) Opacity() float64 { return ov.opacity }

func (ov *Overlay) SetOpacity(alpha float64) {
	ov.opacity = min(max(alpha, 0), 1)
}

func (ov *Overlay) SetActive(active bool) { ov.active = active }

// Active reports whether the overlay is shown.
func (ov *Overlay) Active() bool { return ov.active }

// ActivationControl returns the continue button.
func (ov *Overlay) ActivationControl() ActivationControl { return &ov.button }

// Fill returns the displayed progress bar fill in [0, 1].
func (ov *Overlay) Fill() float64 { return ov.fill }

// ButtonVisible reports whether the continue button is shown.
func (ov *Overlay) ButtonVisible() bool { return ov.showButton }

// OnFadeIn hides the continue button and empties the bar so nothing from the
// previous load shows while fading in.
func (ov *Overlay) OnFadeIn(float32) {
	ov.showButton = false
	ov.fill = 0
}

// OnLoadProgress scales progress so the bar is full at LoadedThreshold.
func (ov *Overlay) OnLoadProgress(progress float64) {
	ov.fill = min(progress/LoadedThreshold, 1)
}

// OnLoadComplete shows the continue button.
func (ov *Overlay) OnLoadComplete() {
	ov.showButton = true
}

// Update clicks the continue button on a left mouse press inside it.
func (ov *Overlay) Update() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	ov.press(float64(x), float64(y))
}

// press clicks the button if it is visible and (x, y) lies inside it.
func (ov *Overlay) press(x, y float64) bool {
	if !ov.active || !ov.showButton || !ov.ButtonBounds.Contains(x, y) {
		return false
	}
	ov.button.Click()
	return true
}

// Draw renders the overlay onto screen at its current opacity.
func (ov *Overlay) Draw(screen *ebiten.Image) {
	if !ov.active || ov.opacity <= 0 {
		return
	}
	if ov.pixel == nil {
		ov.pixel = ebiten.NewImage(1, 1)
		ov.pixel.Fill(color.White)
	}

	ov.drawRect(screen, ov.Bounds, ov.Background)
	track := ov.BarColor
	track.A /= 4
	ov.drawRect(screen, ov.Bar, track)
	fill := ov.Bar
	fill.Width *= ov.fill
	ov.drawRect(screen, fill, ov.BarColor)

	if ov.opacity < 1 {
		return
	}
	label := fmt.Sprintf("%s %3.0f%%", ov.Label, ov.fill*100)
	ebitenutil.DebugPrintAt(screen, label, int(ov.Bar.X), int(ov.Bar.Y)-20)
	if ov.showButton {
		ov.drawRect(screen, ov.ButtonBounds, ov.BarColor)
		ebitenutil.DebugPrintAt(screen, ov.ButtonLabel, int(ov.ButtonBounds.X)+8, int(ov.ButtonBounds.Y)+6)
	}
}

func (ov *Overlay) drawRect(dst *ebiten.Image, r Rect, c color.RGBA) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(ov.opacity))
	dst.DrawImage(ov.pixel, &op)
}
