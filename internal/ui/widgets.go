package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	widgetHoverBg     = color.RGBA{65, 70, 78, 255}
	tabActive         = color.RGBA{76, 132, 96, 255}
	inputTextColor    = color.RGBA{240, 240, 245, 255}
)

// rect fills a logical rectangle.
func rect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	s := float32(UIScale)
	vector.DrawFilledRect(screen, float32(x)*s, float32(y)*s, float32(w)*s, float32(h)*s, c, false)
}

// frame outlines a logical rectangle.
func frame(screen *ebiten.Image, x, y, w, h int, width float32, c color.Color) {
	s := float32(UIScale)
	vector.StrokeRect(screen, float32(x)*s, float32(y)*s, float32(w)*s, float32(h)*s, width*s, c, false)
}

// TextInput is a single-line editable field.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	blink       int
}

// NewTextInput creates a new text input.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{X: x, Y: y, W: w, H: h, Placeholder: placeholder, MaxLength: maxLen}
}

// Update focuses on click and edits while focused.
func (ti *TextInput) Update(input *InputHandler) {
	ti.hovered = input.IsInBounds(ti.X, ti.Y, ti.W, ti.H)
	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return
	}
	ti.blink = (ti.blink + 1) % 60

	for _, r := range ebiten.AppendInputChars(nil) {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(r)
		}
	}
	if input.KeyJustPressed(ebiten.KeyBackspace) && ti.Value != "" {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}
	if input.KeyJustPressed(ebiten.KeyEscape) || input.KeyJustPressed(ebiten.KeyEnter) {
		ti.focused = false
	}
}

// Draw renders the field.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	rect(screen, ti.X, ti.Y, ti.W, ti.H, widgetBg)
	border := widgetBorder
	if ti.focused {
		border = widgetFocusBorder
	} else if ti.hovered {
		border = accentColor
	}
	frame(screen, ti.X, ti.Y, ti.W, ti.H, 2, border)

	f := face(regularSource, 14)
	s, c := ti.Value, color.Color(inputTextColor)
	if s == "" {
		s, c = ti.Placeholder, textMuted
	}
	_, h := measure(s, f)
	tx, ty := float64(ti.X+10), float64(ti.Y)+(float64(ti.H)-h)/2
	drawText(screen, s, f, tx, ty, c)

	if ti.focused && ti.blink < 30 {
		w, _ := measure(ti.Value, f)
		rect(screen, int(tx+w)+2, ti.Y+8, 2, ti.H-16, inputTextColor)
	}
}

// Focused reports whether the field has keyboard focus.
func (ti *TextInput) Focused() bool {
	return ti.focused
}

// Checkbox is a labeled toggle.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a new checkbox.
func NewCheckbox(x, y int, label string) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label}
}

// Update toggles on click.
func (cb *Checkbox) Update(input *InputHandler) {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 240, 24)
	if cb.hovered && input.IsLeftJustPressed() {
		cb.Checked = !cb.Checked
	}
}

// Draw renders the box and label.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	bg, border := widgetBg, widgetBorder
	if cb.hovered {
		bg, border = widgetHoverBg, accentColor
	} else if cb.Checked {
		border = accentColor
	}
	rect(screen, cb.X, cb.Y, 20, 20, bg)
	frame(screen, cb.X, cb.Y, 20, 20, 2, border)
	if cb.Checked {
		s := float32(UIScale)
		x, y := float32(cb.X)*s, float32(cb.Y)*s
		vector.StrokeLine(screen, x+4*s, y+10*s, x+8*s, y+14*s, 2*s, accentColor, true)
		vector.StrokeLine(screen, x+8*s, y+14*s, x+16*s, y+6*s, 2*s, accentColor, true)
	}
	c := textSecondary
	if cb.Checked {
		c = textPrimary
	}
	f := face(regularSource, 14)
	_, h := measure(cb.Label, f)
	drawText(screen, cb.Label, f, float64(cb.X+30), float64(cb.Y)+10-h/2, c)
}

// ButtonGroup is a row of mutually exclusive buttons.
type ButtonGroup struct {
	X, Y     int
	Options  []string
	Selected int
	ButtonW  int
	ButtonH  int
	hovered  int
}

// NewButtonGroup creates a new button group.
func NewButtonGroup(x, y int, options []string, buttonW, buttonH int) *ButtonGroup {
	return &ButtonGroup{X: x, Y: y, Options: options, ButtonW: buttonW, ButtonH: buttonH, hovered: -1}
}

// Update selects the clicked option.
func (bg *ButtonGroup) Update(input *InputHandler) {
	bg.hovered = -1
	for i := range bg.Options {
		if input.IsInBounds(bg.X+i*bg.ButtonW, bg.Y, bg.ButtonW, bg.ButtonH) {
			bg.hovered = i
			if input.IsLeftJustPressed() {
				bg.Selected = i
			}
		}
	}
}

// Draw renders the buttons.
func (bg *ButtonGroup) Draw(screen *ebiten.Image) {
	f := face(regularSource, 14)
	for i, label := range bg.Options {
		x := bg.X + i*bg.ButtonW
		fill, border, fg := buttonBg, buttonBorder, textSecondary
		switch {
		case i == bg.Selected:
			fill, border, fg = tabActive, tabActive, textPrimary
		case i == bg.hovered:
			fill, border = buttonHoverBg, accentColor
		}
		rect(screen, x, bg.Y, bg.ButtonW, bg.ButtonH, fill)
		frame(screen, x, bg.Y, bg.ButtonW, bg.ButtonH, 1, border)
		drawTextCentered(screen, label, f, float64(x), float64(bg.Y), float64(bg.ButtonW), float64(bg.ButtonH), fg)
	}
}

// Hovered reports whether the cursor is over an option.
func (bg *ButtonGroup) Hovered() bool {
	return bg.hovered >= 0
}
