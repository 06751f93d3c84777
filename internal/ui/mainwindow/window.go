// Package mainwindow renders the tabbed clock window. Every method must run
// on the fyne main goroutine.
package mainwindow

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"midnightclock/internal/app"
	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/timekeeper"
	"midnightclock/internal/core/worldclock"
)

const windowTitle = "Midnight Clock"

// Options configures the main window.
type Options struct {
	App *app.App

	// Zones is the searchable zone catalogue for the World Clocks page.
	Zones []string

	// OnHidden runs after the close button hid the window.
	OnHidden func()
}

// Window is the main application window.
type Window struct {
	ctx    context.Context
	app    *app.App
	window fyne.Window
	tabs   *container.AppTabs

	clock     *clockPage
	world     *worldPage
	alarm     *alarmPage
	timer     *timerPage
	stopwatch *stopwatchPage
}

// New builds the window and its five pages. The window starts hidden.
func New(ctx context.Context, fyneApp fyne.App, options Options) *Window {
	window := fyneApp.NewWindow(windowTitle)
	if fyneApp.Icon() != nil {
		window.SetIcon(fyneApp.Icon())
	}

	main := &Window{
		ctx:    ctx,
		app:    options.App,
		window: window,
	}
	main.clock = newClockPage()
	main.world = newWorldPage(main, options.Zones)
	main.alarm = newAlarmPage(main)
	main.timer = newTimerPage(main)
	main.stopwatch = newStopwatchPage(main)

	main.tabs = container.NewAppTabs(
		container.NewTabItem("Clock", main.clock.content),
		container.NewTabItem("World Clocks", main.world.content),
		container.NewTabItem("Alarm", main.alarm.content),
		container.NewTabItem("Timer", main.timer.content),
		container.NewTabItem("Stopwatch", main.stopwatch.content),
	)
	window.SetContent(main.tabs)
	window.Resize(fyne.NewSize(520, 560))

	window.SetCloseIntercept(func() {
		window.Hide()
		if options.OnHidden != nil {
			options.OnHidden()
		}
	})

	main.SetWorldClocks(options.App.WorldClocks())
	main.refreshAlarms()
	main.refreshTimer()
	main.refreshStopwatch()
	return main
}

// Window returns the underlying fyne window.
func (main *Window) Window() fyne.Window {
	return main.window
}

// Show displays and focuses the window.
func (main *Window) Show() {
	main.window.Show()
	main.window.RequestFocus()
}

// SetClock renders the local time and date.
func (main *Window) SetClock(now time.Time) {
	main.clock.time.SetText(clock.FormatTime(now))
	main.clock.date.SetText(clock.FormatDate(now))
}

// SetWorldClocks renders the pinned zone rows.
func (main *Window) SetWorldClocks(rows []worldclock.Row) {
	main.world.setRows(rows)
}

// HandleEvent refreshes the page a keeper event belongs to.
func (main *Window) HandleEvent(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventAlarmFired:
		main.refreshAlarms()
	case timekeeper.EventTimerTick, timekeeper.EventTimerState, timekeeper.EventTimerExpired:
		main.refreshTimer()
	case timekeeper.EventStopwatchTick:
		main.stopwatch.display.SetText(event.Display)
	case timekeeper.EventStopwatchState:
		main.refreshStopwatch()
	}
}

func (main *Window) refreshAlarms() {
	main.alarm.setAlarms(main.app.Keeper().Alarms())
}

func (main *Window) refreshTimer() {
	main.timer.render(main.app.Keeper().Timer())
}

func (main *Window) refreshStopwatch() {
	main.stopwatch.render(main.app.Keeper().Stopwatch())
}

func headingLabel(text string) *widget.Label {
	label := widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	label.SizeName = theme.SizeNameHeadingText
	return label
}

type clockPage struct {
	content fyne.CanvasObject
	time    *widget.Label
	date    *widget.Label
}

func newClockPage() *clockPage {
	page := &clockPage{
		time: headingLabel("00:00:00"),
		date: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
	}
	page.content = container.NewCenter(container.NewVBox(page.time, page.date))
	return page
}
