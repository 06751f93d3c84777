// Package notify presents alarm and timer events as modal dialogs.
package notify

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

const backgroundMessage = "The application is running in the background. Alarms remain active."

// Dialogs shows notifications on top of the main window, raising it first.
type Dialogs struct {
	app    fyne.App
	window fyne.Window
}

// New creates a Dialogs notifier attached to window.
func New(app fyne.App, window fyne.Window) *Dialogs {
	return &Dialogs{app: app, window: window}
}

// Alarm shows the alarm dialog.
func (dialogs *Dialogs) Alarm(message string) {
	dialogs.show("Alarm", "Alarm: "+message)
}

// TimerExpired shows the timer dialog.
func (dialogs *Dialogs) TimerExpired(message string) {
	dialogs.show("Timer", message)
}

// Background tells the user the window was hidden to the tray.
func (dialogs *Dialogs) Background() {
	dialogs.app.SendNotification(fyne.NewNotification("Midnight Clock", backgroundMessage))
}

func (dialogs *Dialogs) show(title, message string) {
	dialogs.window.Show()
	dialogs.window.RequestFocus()
	dialog.ShowInformation(title, message, dialogs.window)
}
