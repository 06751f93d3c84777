package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "Midnight Clock"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// MenuHost is the part of desktop.App the manager drives.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app         MenuHost
	statusItem  *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.refreshStatus()

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
