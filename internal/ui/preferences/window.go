package preferences

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"midnightclock/internal/core/timekeeper"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	logLevel   *widget.Select
	timer      *widget.Entry
	soundFile  *widget.Entry
	background *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Midnight Clock Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		logLevel:   widget.NewSelect(logLevels, nil),
		timer:      widget.NewEntry(),
		soundFile:  widget.NewEntry(),
		background: widget.NewCheck("Notify when hidden to the tray", nil),
	}
	prefs.timer.SetPlaceHolder("HH:MM:SS")
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Log level", prefs.logLevel),
			widget.NewFormItem("Default timer", prefs.timer),
			widget.NewFormItem("Alarm sound", prefs.soundFile),
		),
		prefs.background,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 260))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.timer.SetText(timekeeper.FormatCountdown(int(settings.TimerDuration / time.Second)))
	prefs.soundFile.SetText(settings.SoundFile)
	prefs.background.SetChecked(settings.BackgroundNotice)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	duration, err := timekeeper.ParseCountdown(prefs.timer.Text)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	settings.TimerDuration = duration

	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}
	if prefs.soundFile.Text != "" {
		settings.SoundFile = prefs.soundFile.Text
	}
	settings.BackgroundNotice = prefs.background.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
