package specstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// expected column order of the parameter mapping table CSV:
// ga4_key,dev_guide_var,event_name,category,is_custom_dimension,value_type,description,extraction_hint
var paramTableHeader = []string{
	"ga4_key", "dev_guide_var", "event_name", "category",
	"is_custom_dimension", "value_type", "description", "extraction_hint",
}

// ParseParamTable reads the parameter mapping table (a CSV export of
// the site's GA4 custom-dimension/event-parameter spreadsheet) into
// per-event parameter schemas.
func ParseParamTable(r io.Reader) (map[string]*EventParameterConfig, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return map[string]*EventParameterConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parameter table: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range paramTableHeader {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("parameter table: missing required column %q", want)
		}
	}

	configs := make(map[string]*EventParameterConfig)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parameter table: %w", err)
		}

		get := func(name string) string {
			i := col[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		eventName := get("event_name")
		if eventName == "" {
			continue
		}

		def := ParameterDefinition{
			GA4Key:            get("ga4_key"),
			DevGuideVar:       get("dev_guide_var"),
			Category:          ParameterCategory(strings.ToLower(get("category"))),
			IsCustomDimension: strings.EqualFold(get("is_custom_dimension"), "true") || get("is_custom_dimension") == "1",
			Description:       get("description"),
			ValueType:         ValueType(strings.ToLower(get("value_type"))),
			ExtractionHint:    get("extraction_hint"),
		}
		if def.ValueType == "" {
			def.ValueType = ValueString
		}
		if def.Category == "" {
			def.Category = CategoryEvent
		}

		cfg, ok := configs[eventName]
		if !ok {
			cfg = &EventParameterConfig{EventName: eventName}
			configs[eventName] = cfg
		}
		cfg.Parameters = append(cfg.Parameters, def)
		cfg.Summary.Total++
		if def.IsCustomDimension {
			cfg.Summary.Custom++
		} else {
			cfg.Summary.Standard++
		}
		if def.Category == CategoryItem {
			cfg.HasItems = true
		}
	}

	return configs, nil
}
