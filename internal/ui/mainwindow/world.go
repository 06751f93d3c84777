package mainwindow

import (
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"midnightclock/internal/core/worldclock"
)

type worldPage struct {
	main    *Window
	content fyne.CanvasObject

	rows  *fyne.Container
	zones []string
	times map[string]*widget.Label

	catalogue []string
	filtered  []string
	selected  string
	search    *widget.Entry
	results   *widget.List
	pin       *widget.Button
}

func newWorldPage(main *Window, catalogue []string) *worldPage {
	page := &worldPage{
		main:      main,
		rows:      container.NewVBox(),
		times:     map[string]*widget.Label{},
		catalogue: catalogue,
		filtered:  catalogue,
	}

	page.search = widget.NewEntry()
	page.search.SetPlaceHolder("Search timezones")
	page.search.OnChanged = page.filter

	page.results = widget.NewList(
		func() int { return len(page.filtered) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			zone := page.filtered[id]
			text := zone
			if page.main.app.IsPinned(zone) {
				text += "  (pinned)"
			}
			item.(*widget.Label).SetText(text)
		},
	)
	page.results.OnSelected = func(id widget.ListItemID) {
		page.selected = page.filtered[id]
		page.pin.Enable()
	}

	page.pin = widget.NewButton("Pin", page.pinSelected)
	page.pin.Disable()

	picker := container.NewBorder(
		container.NewBorder(nil, nil, nil, page.pin, page.search),
		nil, nil, nil,
		page.results,
	)
	page.content = container.NewVSplit(container.NewVScroll(page.rows), picker)
	return page
}

func (page *worldPage) setRows(rows []worldclock.Row) {
	zones := make([]string, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, row.Zone)
	}

	if !slices.Equal(zones, page.zones) {
		page.rebuild(rows)
		page.zones = zones
		page.results.Refresh()
		return
	}
	for _, row := range rows {
		page.times[row.Zone].SetText(row.Display)
	}
}

func (page *worldPage) rebuild(rows []worldclock.Row) {
	page.times = make(map[string]*widget.Label, len(rows))
	objects := make([]fyne.CanvasObject, 0, len(rows))
	for _, row := range rows {
		zone := row.Zone
		display := widget.NewLabelWithStyle(row.Display, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true})
		page.times[zone] = display
		unpin := widget.NewButton("Unpin", func() { page.unpin(zone) })
		objects = append(objects, container.NewHBox(
			widget.NewLabelWithStyle(row.City, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(zone),
			layout.NewSpacer(),
			display,
			unpin,
		))
	}
	page.rows.Objects = objects
	page.rows.Refresh()
}

func (page *worldPage) filter(text string) {
	page.filtered = worldclock.Search(page.catalogue, text)
	page.selected = ""
	page.pin.Disable()
	page.results.UnselectAll()
	page.results.Refresh()
}

func (page *worldPage) pinSelected() {
	if page.selected == "" {
		return
	}
	if err := page.main.app.Pin(page.main.ctx, page.selected); err != nil {
		dialog.ShowError(err, page.main.window)
	}
}

func (page *worldPage) unpin(zone string) {
	if err := page.main.app.Unpin(page.main.ctx, zone); err != nil {
		dialog.ShowError(err, page.main.window)
	}
}
