package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"midnightclock/internal/core/model"
	"midnightclock/internal/logger"
)

type pinnedDocument struct {
	PinnedTimezones *[]string `json:"pinned_timezones"`
}

// PinnedFile persists the pinned timezone list as a JSON document.
// Access is unlocked; one process owns the file.
type PinnedFile struct {
	fs   afero.Fs
	path string
}

// NewPinnedFile creates a PinnedFile at path on fs.
func NewPinnedFile(fs afero.Fs, path string) *PinnedFile {
	return &PinnedFile{fs: fs, path: filepath.Clean(path)}
}

// Path returns the file location.
func (file *PinnedFile) Path() string {
	return file.path
}

// Load returns the pinned list. A missing, unreadable or malformed file
// yields the default list; the file is not recreated here.
func (file *PinnedFile) Load(ctx context.Context) []string {
	rawData, err := afero.ReadFile(file.fs, file.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.DebugKV(ctx, "pinned config not found, using defaults", "path", file.path)
		} else {
			logger.WarnKV(ctx, "pinned config unreadable, using defaults", "path", file.path, "error", err)
		}
		return model.DefaultPinnedTimezones()
	}

	var document pinnedDocument
	if err := json.Unmarshal(rawData, &document); err != nil {
		logger.WarnKV(ctx, "pinned config malformed, using defaults", "path", file.path, "error", err)
		return model.DefaultPinnedTimezones()
	}
	if document.PinnedTimezones == nil {
		logger.WarnKV(ctx, "pinned config has no pinned_timezones, using defaults", "path", file.path)
		return model.DefaultPinnedTimezones()
	}

	return append([]string{}, (*document.PinnedTimezones)...)
}

// Save overwrites the file with zones, indented by four spaces.
func (file *PinnedFile) Save(_ context.Context, zones []string) error {
	if zones == nil {
		zones = []string{}
	}

	serialized, err := json.MarshalIndent(pinnedDocument{PinnedTimezones: &zones}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode pinned config: %w", err)
	}

	if dir := filepath.Dir(file.path); dir != "." {
		if err := file.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := afero.WriteFile(file.fs, file.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write pinned config: %w", err)
	}

	return nil
}
