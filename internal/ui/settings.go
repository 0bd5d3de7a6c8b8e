package ui

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/storage"
)

const (
	SettingsWidth  = 400
	SettingsHeight = 440
	SettingsPadX   = 24
)

var (
	modalOverlay = color.RGBA{0, 0, 0, 180}
	modalBg      = color.RGBA{38, 40, 45, 255}
	modalHeader  = color.RGBA{48, 52, 58, 255}
	modalBorder  = color.RGBA{58, 62, 68, 255}

	minuteChoices    = []int{1, 3, 5, 10, 15, 30}
	incrementChoices = []int{0, 1, 2, 5, 10}
)

// SettingsModal edits the stored preferences.
type SettingsModal struct {
	visible bool
	x, y    int

	username  *TextInput
	minutes   *ButtonGroup
	increment *ButtonGroup
	autoQueen *Checkbox
	sound     *Checkbox
	save      *Button
	cancel    *Button

	prefs  *storage.UserPreferences
	onSave func(*storage.UserPreferences)
}

// NewSettingsModal creates the modal centered over the window.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		x: (ScreenWidth - SettingsWidth) / 2,
		y: (ScreenHeight - SettingsHeight) / 2,
	}
	cx := sm.x + SettingsPadX
	cw := SettingsWidth - SettingsPadX*2

	sm.username = NewTextInput(cx, sm.y+76, cw, 36, "Your name", 20)
	sm.minutes = NewButtonGroup(cx, sm.y+152, labels(minuteChoices, "%d"), cw/len(minuteChoices), 34)
	sm.increment = NewButtonGroup(cx, sm.y+226, labels(incrementChoices, "+%d"), cw/len(incrementChoices), 34)
	sm.autoQueen = NewCheckbox(cx, sm.y+280, "Always promote to queen")
	sm.sound = NewCheckbox(cx, sm.y+312, "Sound effects")

	btnY := sm.y + SettingsHeight - 20 - 38
	sm.save = &Button{X: sm.x + SettingsWidth - SettingsPadX - 100, Y: btnY, W: 100, H: 38, Primary: true,
		Label: func() string { return "Save" }, OnClick: sm.handleSave}
	sm.cancel = &Button{X: sm.save.X - 112, Y: btnY, W: 100, H: 38,
		Label: func() string { return "Cancel" }, OnClick: sm.Hide}
	return sm
}

func labels(values []int, format string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf(format, v)
	}
	return out
}

// Show opens the modal on a copy of prefs. onSave receives the edited copy.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences)) {
	edited := *prefs
	sm.prefs = &edited
	sm.onSave = onSave
	sm.visible = true

	sm.username.Value = prefs.Username
	sm.minutes.Selected = max(0, slices.Index(minuteChoices, prefs.TimeControlMinutes))
	sm.increment.Selected = max(0, slices.Index(incrementChoices, prefs.IncrementSeconds))
	sm.autoQueen.Checked = prefs.AutoQueen
	sm.sound.Checked = prefs.SoundEnabled
}

// Hide closes the modal without saving.
func (sm *SettingsModal) Hide() {
	sm.visible = false
	sm.username.focused = false
}

// IsVisible reports whether the modal is open.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

func (sm *SettingsModal) handleSave() {
	p := sm.prefs
	if sm.username.Value != "" {
		p.Username = sm.username.Value
	}
	p.TimeControlMinutes = minuteChoices[sm.minutes.Selected]
	p.IncrementSeconds = incrementChoices[sm.increment.Selected]
	p.AutoQueen = sm.autoQueen.Checked
	p.SoundEnabled = sm.sound.Checked
	sm.Hide()
	if sm.onSave != nil {
		sm.onSave(p)
	}
}

// Update handles input while the modal is open. It consumes all input.
func (sm *SettingsModal) Update(input *InputHandler) {
	if input.KeyJustPressed(ebiten.KeyEscape) && !sm.username.Focused() {
		sm.Hide()
		return
	}
	sm.username.Update(input)
	sm.minutes.Update(input)
	sm.increment.Update(input)
	sm.autoQueen.Update(input)
	sm.sound.Update(input)
	for _, b := range []*Button{sm.save, sm.cancel} {
		b.hovered = input.IsInBounds(b.X, b.Y, b.W, b.H)
		b.pressed = b.hovered && input.IsLeftPressed()
		if b.hovered && input.IsLeftJustPressed() {
			b.OnClick()
			return
		}
	}
}

// AnyButtonHovered reports whether the cursor is over a clickable element.
func (sm *SettingsModal) AnyButtonHovered() bool {
	return sm.visible && (sm.save.hovered || sm.cancel.hovered || sm.minutes.Hovered() ||
		sm.increment.Hovered() || sm.autoQueen.hovered || sm.sound.hovered)
}

// Draw renders the modal over a dimmed window.
func (sm *SettingsModal) Draw(screen *ebiten.Image, p *Panel) {
	if !sm.visible {
		return
	}
	rect(screen, 0, 0, ScreenWidth, ScreenHeight, modalOverlay)
	rect(screen, sm.x, sm.y, SettingsWidth, SettingsHeight, modalBg)
	frame(screen, sm.x, sm.y, SettingsWidth, SettingsHeight, 2, modalBorder)
	rect(screen, sm.x, sm.y, SettingsWidth, 44, modalHeader)
	drawTextCentered(screen, "Settings", face(boldSource, 16), float64(sm.x), float64(sm.y), SettingsWidth, 44, textPrimary)

	label := face(regularSource, 13)
	cx := float64(sm.x + SettingsPadX)
	drawText(screen, "Player name", label, cx, float64(sm.y+56), textMuted)
	drawText(screen, "Minutes per side", label, cx, float64(sm.y+132), textMuted)
	drawText(screen, "Increment (seconds)", label, cx, float64(sm.y+206), textMuted)
	drawText(screen, "Changes to the time control apply from the next game.", face(regularSource, 11),
		cx, float64(sm.y+350), textMuted)

	sm.username.Draw(screen)
	sm.minutes.Draw(screen)
	sm.increment.Draw(screen)
	sm.autoQueen.Draw(screen)
	sm.sound.Draw(screen)
	p.drawButton(screen, sm.save)
	p.drawButton(screen, sm.cancel)
}
