package mainwindow

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"midnightclock/internal/core/timekeeper"
)

type alarmPage struct {
	main    *Window
	content fyne.CanvasObject

	at      *widget.Entry
	message *widget.Entry
	set     *widget.Button
	list    *widget.List
	alarms  []timekeeper.Alarm
}

func newAlarmPage(main *Window) *alarmPage {
	page := &alarmPage{main: main}

	page.at = widget.NewEntry()
	page.at.SetPlaceHolder("HH:MM")
	page.message = widget.NewEntry()
	page.message.SetPlaceHolder("Alarm message")
	page.set = widget.NewButton("Set Alarm", page.add)

	page.list = widget.NewList(
		func() int { return len(page.alarms) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(page.alarms[id].Label())
		},
	)

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Time", page.at),
			widget.NewFormItem("Message", page.message),
		),
		page.set,
	)
	page.content = container.NewBorder(form, nil, nil, nil, page.list)
	return page
}

func (page *alarmPage) add() {
	at, err := timekeeper.ParseTimeOfDay(page.at.Text)
	if err != nil {
		dialog.ShowError(err, page.main.window)
		return
	}
	if _, err := page.main.app.Keeper().AddAlarm(at, page.message.Text); err != nil {
		dialog.ShowError(err, page.main.window)
		return
	}
	page.message.SetText("")
	page.main.refreshAlarms()
}

func (page *alarmPage) setAlarms(alarms []timekeeper.Alarm) {
	page.alarms = alarms
	page.list.Refresh()
}

type timerPage struct {
	main    *Window
	content fyne.CanvasObject

	display  *widget.Label
	duration *widget.Entry
	apply    *widget.Button
	start    *widget.Button
	pause    *widget.Button
	reset    *widget.Button
}

func newTimerPage(main *Window) *timerPage {
	page := &timerPage{main: main, display: headingLabel("00:00:00")}

	page.duration = widget.NewEntry()
	page.duration.SetPlaceHolder("HH:MM:SS")
	page.duration.SetText(main.app.Keeper().Timer().Display)
	page.apply = widget.NewButton("Set", page.configure)

	keeper := main.app.Keeper()
	page.start = widget.NewButton("Start", func() { keeper.StartTimer() })
	page.pause = widget.NewButton("Pause", func() { keeper.PauseTimer() })
	page.reset = widget.NewButton("Reset", keeper.ResetTimer)

	page.content = container.NewVBox(
		page.display,
		container.NewBorder(nil, nil, nil, page.apply, page.duration),
		container.NewGridWithColumns(3, page.start, page.pause, page.reset),
	)
	return page
}

func (page *timerPage) configure() {
	duration, err := timekeeper.ParseCountdown(page.duration.Text)
	if err != nil {
		dialog.ShowError(err, page.main.window)
		return
	}
	page.main.app.Keeper().ConfigureTimer(duration)
}

func (page *timerPage) render(timer timekeeper.TimerSnapshot) {
	page.display.SetText(timer.Display)

	running := timer.State == timekeeper.CountdownRunning
	if !running {
		page.duration.SetText(timekeeper.FormatCountdown(timer.Duration))
	}
	setEnabled(page.duration, !running)
	setEnabled(page.apply, !running)
	setEnabled(page.start, !running && timer.Remaining > 0)
	setEnabled(page.pause, running)

	if timer.State == timekeeper.CountdownPaused {
		page.start.SetText("Resume")
	} else {
		page.start.SetText("Start")
	}
}

type stopwatchPage struct {
	main    *Window
	content fyne.CanvasObject

	display *widget.Label
	start   *widget.Button
	stop    *widget.Button
	reset   *widget.Button
	lap     *widget.Button
	list    *widget.List
	laps    []string
}

func newStopwatchPage(main *Window) *stopwatchPage {
	page := &stopwatchPage{main: main, display: headingLabel("00:00.000")}

	keeper := main.app.Keeper()
	page.start = widget.NewButton("Start", func() { keeper.StartStopwatch() })
	page.stop = widget.NewButton("Stop", func() { keeper.StopStopwatch() })
	page.reset = widget.NewButton("Reset", keeper.ResetStopwatch)
	page.lap = widget.NewButton("Lap", func() { keeper.Lap() })

	page.list = widget.NewList(
		func() int { return len(page.laps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(page.laps[id])
		},
	)

	top := container.NewVBox(
		page.display,
		container.NewGridWithColumns(4, page.start, page.stop, page.reset, page.lap),
	)
	page.content = container.NewBorder(top, nil, nil, nil, page.list)
	return page
}

func (page *stopwatchPage) render(stopwatch timekeeper.StopwatchSnapshot) {
	page.display.SetText(stopwatch.Display)
	setEnabled(page.start, !stopwatch.Running)
	setEnabled(page.stop, stopwatch.Running)
	setEnabled(page.lap, stopwatch.Running)

	page.laps = stopwatch.Laps
	page.list.Refresh()
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(object disableable, enabled bool) {
	if enabled {
		object.Enable()
		return
	}
	object.Disable()
}
