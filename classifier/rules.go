package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// rulesSchema is the JSON Schema every external rules document
// must satisfy before any pattern is compiled.
const rulesSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["tier", "weight", "patterns"],
    "additionalProperties": false,
    "properties": {
      "tier": {"enum": ["simple", "standard", "complex"]},
      "weight": {"type": "number", "exclusiveMinimum": 0},
      "patterns": {
        "type": "array",
        "minItems": 1,
        "items": {"type": "string", "minLength": 1}
      }
    }
  }
}`

// compiledRulesSchema is built once at package init; the
// schema is a constant, so a compile failure is unreachable in
// a correct build.
var compiledRulesSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(
		bytes.NewReader([]byte(rulesSchema)),
	)
	if err != nil {
		panic("classifier: parse rules schema: " + err.Error())
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("rules-schema.json", doc); err != nil {
		panic("classifier: add rules schema: " + err.Error())
	}
	compiled, err := c.Compile("rules-schema.json")
	if err != nil {
		panic("classifier: compile rules schema: " + err.Error())
	}
	return compiled
}

// ParseRules decodes a JSON rules document, validating it
// against the rules schema first. Schema violations and
// invalid regex patterns both surface as errors here, never
// later during classification.
func ParseRules(data []byte) ([]Rule, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := compiledRulesSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate rules: %w", err)
	}

	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return rules, nil
}

// LoadRules reads path and decodes it with [ParseRules].
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return ParseRules(data)
}
