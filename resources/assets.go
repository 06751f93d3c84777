package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/spf13/afero"
)

const (
	logoDir     = "logo/"
	defaultIcon = "icon.png"
)

//go:embed logo/*.png
var logoFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given embedded logo file.
func Logo(fileName string) (fyne.Resource, error) {
	if cached, ok := logoCache.Load(fileName); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(logoDir + fileName)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", fileName, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	logoCache.Store(fileName, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// Icon loads the window and tray icon from path on fs, falling back to the
// embedded icon when the file is missing or empty. The bool reports whether
// the file on disk was used.
func Icon(fs afero.Fs, path string) (fyne.Resource, bool) {
	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err == nil && len(data) > 0 {
			return fyne.NewStaticResource(path, data), true
		}
	}
	return MustLogo(defaultIcon), false
}
