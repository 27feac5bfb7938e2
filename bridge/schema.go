package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const stateSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["board_size", "step_count", "board", "agents"],
  "properties": {
    "board_size": {"type": "integer", "const": 11},
    "step_count": {"type": "integer", "minimum": 0},
    "board": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 13}}
    },
    "agents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["agent_id", "position", "is_alive", "ammo", "blast_strength", "can_kick"],
        "properties": {
          "agent_id": {"type": "integer", "minimum": 0, "maximum": 3},
          "position": {"type": "array", "minItems": 2, "maxItems": 2, "items": {"type": "integer"}},
          "is_alive": {"type": "boolean"},
          "ammo": {"type": "integer"},
          "blast_strength": {"type": "integer"},
          "can_kick": {"type": "boolean"}
        }
      }
    },
    "bombs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["bomber_id", "position", "life", "blast_strength"],
        "properties": {
          "bomber_id": {"type": "integer"},
          "position": {"type": "array", "minItems": 2, "maxItems": 2},
          "life": {"type": "integer"},
          "blast_strength": {"type": "integer"}
        }
      }
    },
    "flames": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["position", "life"],
        "properties": {
          "position": {"type": "array", "minItems": 2, "maxItems": 2},
          "life": {"type": "integer"}
        }
      }
    }
  }
}`

// Schema validates a WireState payload's shape before it is unmarshalled,
// so a malformed payload is reported with a precise JSON-pointer path
// rather than surfacing as a confusing decode error or, worse, a
// silently wrong WireState.
var Schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	s, err := jsonschema.CompileString("pommergo://state.schema.json", stateSchemaJSON)
	if err != nil {
		panic(fmt.Sprintf("bridge: invalid embedded schema: %v", err))
	}
	return s
}

// ValidateRaw parses raw JSON bytes into a generic value and checks it
// against Schema.
func ValidateRaw(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("bridge: invalid json: %w", err)
	}
	if err := Schema.Validate(v); err != nil {
		return fmt.Errorf("bridge: schema validation failed: %w", err)
	}
	return nil
}

// DecodeValidated parses raw into a WireState after checking it against
// Schema, so a caller never unmarshals a payload schema validation would
// have rejected.
func DecodeValidated(raw []byte) (WireState, error) {
	if err := ValidateRaw(raw); err != nil {
		return WireState{}, err
	}
	var ws WireState
	if err := json.Unmarshal(raw, &ws); err != nil {
		return WireState{}, fmt.Errorf("bridge: unmarshal after validation: %w", err)
	}
	return ws, nil
}
