package container

import (
	"encoding/json"
	"fmt"

	"ga4oracle/errs"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// exportSchema pins the shape Parse actually walks: a containerVersion
// object carrying the tag/trigger/variable arrays. It's intentionally
// loose on per-item fields — those are validated structurally by
// Parse's own decode — and exists to catch the common corruption case
// of a non-container JSON document (e.g. a tag list or an API error
// body) before fromExport runs on it.
const exportSchema = `{
	"type": "object",
	"required": ["containerVersion"],
	"properties": {
		"containerVersion": {
			"type": "object",
			"properties": {
				"tag":      { "type": "array" },
				"trigger":  { "type": "array" },
				"variable": { "type": "array" }
			}
		}
	}
}`

func compileExportSchema() (*jsonschema.Schema, error) {
	var schemaDoc any
	if err := json.Unmarshal([]byte(exportSchema), &schemaDoc); err != nil {
		return nil, fmt.Errorf("container: compile export schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("export.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("container: compile export schema: %w", err)
	}
	return c.Compile("export.json")
}

// validateExportShape checks raw against exportSchema before
// fromExport walks it, so a malformed export (wrong top-level shape
// entirely) is reported as a schema violation with the validator's
// pointer path attached, instead of silently decoding into a
// zero-value Model.
func validateExportShape(raw []byte) error {
	schema, err := compileExportSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: corrupt container: %s", errs.ErrConfig, err.Error())
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: corrupt container: schema violation: %s", errs.ErrConfig, err.Error())
	}
	return nil
}
