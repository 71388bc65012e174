package schedclient

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the scheduler API contract. Responses are validated
// before decoding so a shape change surfaces as a schema error with a
// field path instead of a silent zero value.

const scheduleSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "task_type", "timezone", "recurrence", "enabled"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "task_type": {"type": "string", "minLength": 1},
    "payload": {},
    "timezone": {"type": "string", "minLength": 1},
    "recurrence": {
      "type": "object",
      "required": ["type", "interval", "at"],
      "properties": {
        "type": {"enum": ["daily", "weekly"]},
        "interval": {"type": "integer", "minimum": 1},
        "days": {
          "type": "array",
          "items": {"type": "string"}
        },
        "at": {"type": "string", "pattern": "^[0-2][0-9]:[0-5][0-9]$"}
      }
    },
    "next_run": {"type": ["string", "null"], "format": "date-time"},
    "enabled": {"type": "boolean"}
  }
}`

const scheduleListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": ` + scheduleItemRef + `
}`

// Same object shape as scheduleSchema, inlined because gojsonschema loads
// each document independently.
const scheduleItemRef = `{
  "type": "object",
  "required": ["id", "name", "task_type", "timezone", "recurrence", "enabled"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "task_type": {"type": "string", "minLength": 1},
    "timezone": {"type": "string", "minLength": 1},
    "recurrence": {"type": "object"},
    "next_run": {"type": ["string", "null"]},
    "enabled": {"type": "boolean"}
  }
}`

const statsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["total", "enabled", "overdue", "due_next_24h"],
  "properties": {
    "total": {"type": "integer", "minimum": 0},
    "enabled": {"type": "integer", "minimum": 0},
    "overdue": {"type": "integer", "minimum": 0},
    "due_next_24h": {"type": "integer", "minimum": 0}
  }
}`

func validateAgainstSchema(schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("response violates scheduler contract: %s", strings.Join(msgs, "; "))
}
