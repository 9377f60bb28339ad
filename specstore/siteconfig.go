package specstore

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// siteConfigDoc mirrors SiteConfig's shape for YAML decoding; kept
// separate so SiteConfig itself carries no struct tags.
type siteConfigDoc struct {
	Host                   string                  `yaml:"host"`
	SiteName               string                  `yaml:"site_name"`
	EventAliases           map[string]string       `yaml:"event_aliases"`
	DomAttributePrefix     string                  `yaml:"dom_attribute_prefix"`
	GTMInferenceUnreliable []string                `yaml:"gtm_inference_unreliable"`
	ForcedAutoInclude      []string                `yaml:"forced_auto_include"`
	EdgeCases              map[string]edgeCaseDoc  `yaml:"edge_cases"`
	LinkedEventRules       []LinkedEventRule       `yaml:"linked_event_rules"`
	BrandEventSwap         *brandEventSwapDoc      `yaml:"brand_event_swap"`
}

type edgeCaseDoc struct {
	Condition          string   `yaml:"condition"`
	Description        string   `yaml:"description"`
	RequiredElement    string   `yaml:"required_element"`
	AllowedPageTypes   []string `yaml:"allowed_page_types"`
	Disabled           bool     `yaml:"disabled"`
	AllowedURLPatterns []string `yaml:"allowed_url_patterns"`
}

type brandEventSwapDoc struct {
	BlockedEvent      string `yaml:"blocked_event"`
	ReplacementEvent  string `yaml:"replacement_event"`
	PageTypeTrigger   string `yaml:"page_type_trigger"`
	URLPatternTrigger string `yaml:"url_pattern_trigger"`
}

// ParseSiteConfig decodes one site's YAML configuration bundle.
func ParseSiteConfig(r io.Reader) (*SiteConfig, error) {
	var doc siteConfigDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}
	if doc.Host == "" {
		return nil, fmt.Errorf("site config: host is required")
	}

	cfg := &SiteConfig{
		Host:                   doc.Host,
		SiteName:               doc.SiteName,
		EventAliases:           doc.EventAliases,
		DomAttributePrefix:     doc.DomAttributePrefix,
		GTMInferenceUnreliable: doc.GTMInferenceUnreliable,
		ForcedAutoInclude:      doc.ForcedAutoInclude,
		LinkedEventRules:       doc.LinkedEventRules,
	}

	if len(doc.EdgeCases) > 0 {
		cfg.EdgeCases = make(map[string]EdgeCase, len(doc.EdgeCases))
		for name, e := range doc.EdgeCases {
			cfg.EdgeCases[name] = EdgeCase{
				EventName:          name,
				Condition:          e.Condition,
				Description:        e.Description,
				RequiredElement:    e.RequiredElement,
				AllowedPageTypes:   e.AllowedPageTypes,
				Disabled:           e.Disabled,
				AllowedURLPatterns: e.AllowedURLPatterns,
			}
		}
	}

	if doc.BrandEventSwap != nil {
		cfg.BrandEventSwap = &BrandEventSwap{
			BlockedEvent:      doc.BrandEventSwap.BlockedEvent,
			ReplacementEvent:  doc.BrandEventSwap.ReplacementEvent,
			PageTypeTrigger:   doc.BrandEventSwap.PageTypeTrigger,
			URLPatternTrigger: doc.BrandEventSwap.URLPatternTrigger,
		}
	}

	return cfg, nil
}
