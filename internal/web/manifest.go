package web

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/streamfront/internal/shared"
)

// Manifest keys written by the bundler.
const (
	KeyStylesheet = "main.css"
	KeyMainJS     = "main.js"
	KeyVendorJS   = "vendors.js"
)

// Fallback paths used when the manifest or one of its keys is missing.
const (
	FallbackStylesheet = "/assets/main.css"
	FallbackMainJS     = "/assets/bundle.js"
	FallbackVendorJS   = "/assets/vendor.js"
)

// Assets are the resolved bundle paths referenced by the document.
type Assets struct {
	Stylesheet string
	MainJS     string
	VendorJS   string
}

// DefaultAssets returns the fallback paths.
func DefaultAssets() Assets {
	return Assets{Stylesheet: FallbackStylesheet, MainJS: FallbackMainJS, VendorJS: FallbackVendorJS}
}

// Manifest maps logical asset names to deployed paths.
type Manifest map[string]string

// LoadManifest reads a manifest.json file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: failed to parse manifest %s: %v", shared.ErrInvalidConfig, path, err)
	}
	return m, nil
}

// Assets resolves the bundle paths, falling back per key. A nil manifest resolves to [DefaultAssets].
func (m Manifest) Assets() Assets {
	pick := func(key, fallback string) string {
		if v := m[key]; v != "" {
			return v
		}
		return fallback
	}
	return Assets{
		Stylesheet: pick(KeyStylesheet, FallbackStylesheet),
		MainJS:     pick(KeyMainJS, FallbackMainJS),
		VendorJS:   pick(KeyVendorJS, FallbackVendorJS),
	}
}

// ManifestSource resolves assets from a manifest file.
//
// In development the file is read on every call so rebuilt bundles are picked up; otherwise it is read once.
type ManifestSource struct {
	path   string
	dev    bool
	logger *log.Logger

	once   sync.Once
	cached Assets
}

// NewManifestSource creates a [ManifestSource] for the manifest at path.
func NewManifestSource(path string, dev bool, logger *log.Logger) *ManifestSource {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ManifestSource{path: path, dev: dev, logger: shared.WithLogger(logger, "component", "manifest")}
}

// Assets returns the current bundle paths.
func (s *ManifestSource) Assets() Assets {
	if s.dev {
		return s.load()
	}
	s.once.Do(func() { s.cached = s.load() })
	return s.cached
}

func (s *ManifestSource) load() Assets {
	if s.path == "" {
		return DefaultAssets()
	}

	m, err := LoadManifest(s.path)
	if err != nil {
		s.logger.Debug("using fallback assets", "path", s.path, "error", err)
		return DefaultAssets()
	}
	return m.Assets()
}
