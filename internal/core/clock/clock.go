// Package clock reads wall-clock time and formats it for display.
package clock

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // zone lookups must work on hosts without a zoneinfo database
)

// ErrUnknownZone indicates a timezone identifier that cannot be resolved.
var ErrUnknownZone = errors.New("unknown timezone")

const (
	timeLayout = "15:04:05"
	dateLayout = "Monday, January 02, 2006"
)

// Source provides the current civil time.
type Source interface {
	Now() time.Time
	NowIn(zone string) (time.Time, error)
}

// System reads the host clock.
type System struct {
	locations sync.Map
}

// NewSystem creates a host-clock Source.
func NewSystem() *System {
	return &System{}
}

// Now returns the local wall-clock time.
func (source *System) Now() time.Time {
	return time.Now()
}

// NowIn returns the current time in zone.
func (source *System) NowIn(zone string) (time.Time, error) {
	location, err := source.location(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(location), nil
}

func (source *System) location(zone string) (*time.Location, error) {
	if cached, ok := source.locations.Load(zone); ok {
		return cached.(*time.Location), nil
	}
	location, err := LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	source.locations.Store(zone, location)
	return location, nil
}

// LoadLocation resolves an IANA identifier. Empty and "Local" names are
// rejected; a pinned zone must name a real region.
func LoadLocation(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("load location %q: %w", zone, ErrUnknownZone)
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", zone, errors.Join(ErrUnknownZone, err))
	}
	return location, nil
}

// FormatTime renders t as HH:MM:SS on a 24-hour clock.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// FormatDate renders t in long form, e.g. "Thursday, October 15, 2026".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// CityName derives a display label from a zone identifier.
func CityName(zone string) string {
	city := zone
	if index := strings.LastIndex(zone, "/"); index >= 0 {
		city = zone[index+1:]
	}
	return strings.ReplaceAll(city, "_", " ")
}
