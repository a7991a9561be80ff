// internal/appconfig/schema.go
package appconfig

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "dataPath":        {"type": "string"},
    "logFile":         {"type": "string"},
    "debug":           {"type": "boolean"},
    "width":           {"type": "number", "exclusiveMinimum": 0},
    "height":          {"type": "number", "exclusiveMinimum": 0},
    "margin": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "top":    {"type": "number", "minimum": 0},
        "right":  {"type": "number", "minimum": 0},
        "bottom": {"type": "number", "minimum": 0},
        "left":   {"type": "number", "minimum": 0}
      }
    },
    "binTicks":        {"type": "integer", "minimum": 1},
    "snrPadding":      {"$ref": "#/definitions/padding"},
    "ssimPadding":     {"$ref": "#/definitions/padding"},
    "report":          {"type": "string"},
    "exportDir":       {"type": "string"},
    "addr":            {"type": "string"},
    "sync":            {"type": "boolean"},
    "shutdownTimeout": {"type": "integer", "minimum": 0}
  },
  "definitions": {
    "padding": {
      "type": "object",
      "additionalProperties": false,
      "required": ["lower", "upper"],
      "properties": {
        "lower": {"type": "number", "exclusiveMinimum": 0},
        "upper": {"type": "number", "exclusiveMinimum": 0}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(configSchema)

// Validate checks raw config JSON against the configuration schema.
func Validate(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
