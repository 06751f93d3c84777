package worldclock

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"midnightclock/internal/core/clock"
)

// ZoneinfoRoots are the directories searched for zone files.
var ZoneinfoRoots = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
}

// fallbackZones is offered when the host has no zoneinfo tree (Windows).
var fallbackZones = []string{
	"Africa/Cairo", "Africa/Johannesburg", "Africa/Lagos", "Africa/Nairobi",
	"America/Anchorage", "America/Argentina/Buenos_Aires", "America/Bogota",
	"America/Chicago", "America/Denver", "America/Halifax", "America/Los_Angeles",
	"America/Mexico_City", "America/New_York", "America/Phoenix", "America/Sao_Paulo",
	"America/St_Johns", "America/Toronto", "Asia/Bangkok", "Asia/Dubai",
	"Asia/Hong_Kong", "Asia/Jakarta", "Asia/Jerusalem", "Asia/Karachi",
	"Asia/Kathmandu", "Asia/Kolkata", "Asia/Manila", "Asia/Seoul", "Asia/Shanghai",
	"Asia/Singapore", "Asia/Tehran", "Asia/Tokyo", "Atlantic/Reykjavik",
	"Australia/Adelaide", "Australia/Brisbane", "Australia/Perth", "Australia/Sydney",
	"Europe/Amsterdam", "Europe/Athens", "Europe/Berlin", "Europe/Istanbul",
	"Europe/Kyiv", "Europe/Lisbon", "Europe/London", "Europe/Madrid", "Europe/Moscow",
	"Europe/Paris", "Europe/Rome", "Europe/Stockholm", "Europe/Warsaw", "Europe/Zurich",
	"Pacific/Auckland", "Pacific/Honolulu", "UTC",
}

// Catalogue lists the zone identifiers found under ZoneinfoRoots on fsys,
// sorted. Only names that resolve to a location are kept.
func Catalogue(fsys afero.Fs) []string {
	seen := make(map[string]struct{})
	for _, root := range ZoneinfoRoots {
		_ = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			name, relErr := filepath.Rel(root, path)
			if relErr != nil || name == "." {
				return nil
			}
			name = filepath.ToSlash(name)
			if info.IsDir() {
				if skipZoneDir(name) {
					return filepath.SkipDir
				}
				return nil
			}
			if !looksLikeZone(name) {
				return nil
			}
			if _, err := clock.LoadLocation(name); err != nil {
				return nil
			}
			seen[name] = struct{}{}
			return nil
		})
	}

	if len(seen) == 0 {
		return slices.Clone(fallbackZones)
	}

	zones := make([]string, 0, len(seen))
	for zone := range seen {
		zones = append(zones, zone)
	}
	slices.Sort(zones)
	return zones
}

// Search returns the zones containing filter, ignoring case.
func Search(zones []string, filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return slices.Clone(zones)
	}
	var matched []string
	for _, zone := range zones {
		if strings.Contains(strings.ToLower(zone), filter) {
			matched = append(matched, zone)
		}
	}
	return matched
}

func skipZoneDir(name string) bool {
	switch name {
	case "posix", "right", "Etc", "SystemV":
		return true
	}
	return false
}

func looksLikeZone(name string) bool {
	if strings.Contains(name, ".") {
		return false
	}
	switch name {
	case "posixrules", "localtime", "Factory", "leapseconds", "leap-seconds":
		return false
	}
	first := name[0]
	return first >= 'A' && first <= 'Z'
}
