package specstore

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

// Store aggregates the development guide, the parameter mapping table,
// the ecommerce fallback table, and the per-site configuration bundles
// into the single read path the gating and prediction engines consult.
// It is built once at startup and is safe for concurrent read access
// from multiple analyses.
type Store struct {
	guideSource []byte
	guide       map[string]*ParsedEventDefinition
	params      map[string]*EventParameterConfig
	sites       map[string]*SiteConfig // keyed by Host
}

// Load reads the development guide, parameter table, and site config
// bundle from disk. Any individually-missing source degrades that
// source to empty rather than failing the whole store — a site
// without a parameter table still gets guide- and GTM-derived gating.
func Load(devGuidePath, paramTablePath, siteConfigDir string) (*Store, error) {
	s := &Store{
		guide:  map[string]*ParsedEventDefinition{},
		params: map[string]*EventParameterConfig{},
		sites:  map[string]*SiteConfig{},
	}

	if devGuidePath != "" {
		raw, err := os.ReadFile(devGuidePath)
		if err != nil {
			slog.Warn("specstore: development guide unavailable", "path", devGuidePath, "error", err)
		} else {
			defs, err := ParseGuide(raw, GuideOptions{})
			if err != nil {
				return nil, fmt.Errorf("specstore: %w", err)
			}
			s.guideSource = raw
			s.guide = defs
		}
	}

	if paramTablePath != "" {
		f, err := os.Open(paramTablePath)
		if err != nil {
			slog.Warn("specstore: parameter table unavailable", "path", paramTablePath, "error", err)
		} else {
			defer f.Close()
			cfgs, err := ParseParamTable(f)
			if err != nil {
				return nil, fmt.Errorf("specstore: %w", err)
			}
			s.params = cfgs
		}
	}

	if siteConfigDir != "" {
		entries, err := os.ReadDir(siteConfigDir)
		if err != nil {
			slog.Warn("specstore: site config directory unavailable", "path", siteConfigDir, "error", err)
		} else {
			for _, entry := range entries {
				if entry.IsDir() || !isYAML(entry.Name()) {
					continue
				}
				full := filepath.Join(siteConfigDir, entry.Name())
				f, err := os.Open(full)
				if err != nil {
					return nil, fmt.Errorf("specstore: %w", err)
				}
				cfg, err := ParseSiteConfig(f)
				f.Close()
				if err != nil {
					return nil, fmt.Errorf("specstore: %s: %w", full, err)
				}
				s.sites[cfg.Host] = cfg
			}
		}
	}

	return s, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// EventDefinition resolves an event's documented definition, preferring
// the development guide and falling back to the hard-coded GA4
// ecommerce table when the guide is silent on it.
func (s *Store) EventDefinition(eventName string) (*ParsedEventDefinition, bool) {
	if def, ok := s.guide[eventName]; ok {
		return def, true
	}
	if def, ok := EcommerceFallback(eventName); ok {
		return def, true
	}
	return nil, false
}

// GuideEventNames returns every event name the development guide
// documents, regardless of whether the mined container defines a tag
// for it — a guide entry with no matching tag is exactly the kind of
// drift the oracle exists to surface.
func (s *Store) GuideEventNames() []string {
	names := make([]string, 0, len(s.guide))
	for name := range s.guide {
		names = append(names, name)
	}
	return names
}

// ParametersOf returns the parameter schema documented for eventName,
// or a zero-value config (no parameters known) when undocumented.
func (s *Store) ParametersOf(eventName string) EventParameterConfig {
	if cfg, ok := s.params[eventName]; ok {
		return *cfg
	}
	return EventParameterConfig{EventName: eventName}
}

// SiteOf resolves the site configuration bundle matching host, or a
// zero-value SiteConfig when no bundle was loaded for it.
func (s *Store) SiteOf(host string) SiteConfig {
	if cfg, ok := s.sites[host]; ok {
		return *cfg
	}
	return SiteConfig{Host: host}
}

// Render produces an HTML rendering of the raw development guide
// source, for the get_development_guide MCP resource.
func (s *Store) Render() (string, error) {
	if len(s.guideSource) == 0 {
		return "", fmt.Errorf("specstore: no development guide loaded")
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(s.guideSource, &buf); err != nil {
		return "", fmt.Errorf("specstore: render guide: %w", err)
	}
	return buf.String(), nil
}
