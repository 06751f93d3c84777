package worldclock

import (
	"midnightclock/internal/core/clock"
)

const initialDisplay = "00:00:00"

// Row is the render state of one pinned zone.
type Row struct {
	Zone    string
	City    string
	Display string
}

// Board maps pinned zones to their render state. It holds no widgets.
// It is not safe for concurrent use.
type Board struct {
	order []string
	rows  map[string]*Row
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{rows: make(map[string]*Row)}
}

// Sync makes the board match zones. Rows for retained zones keep their text.
func (board *Board) Sync(zones []string) {
	rows := make(map[string]*Row, len(zones))
	order := make([]string, 0, len(zones))
	for _, zone := range zones {
		if _, seen := rows[zone]; seen {
			continue
		}
		row, ok := board.rows[zone]
		if !ok {
			row = &Row{Zone: zone, City: clock.CityName(zone), Display: initialDisplay}
		}
		rows[zone] = row
		order = append(order, zone)
	}
	board.rows = rows
	board.order = order
}

// Refresh re-renders every row from source. A zone that cannot be
// resolved keeps its previous text.
func (board *Board) Refresh(source clock.Source) {
	for _, zone := range board.order {
		now, err := source.NowIn(zone)
		if err != nil {
			continue
		}
		board.rows[zone].Display = clock.FormatTime(now)
	}
}

// Row returns the render state for zone.
func (board *Board) Row(zone string) (Row, bool) {
	row, ok := board.rows[zone]
	if !ok {
		return Row{}, false
	}
	return *row, true
}

// Rows returns every row in pin order.
func (board *Board) Rows() []Row {
	rows := make([]Row, 0, len(board.order))
	for _, zone := range board.order {
		rows = append(rows, *board.rows[zone])
	}
	return rows
}
