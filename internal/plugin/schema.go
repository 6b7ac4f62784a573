package plugin

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Service call schemas. Host applications hand service payloads through as
// raw JSON; these schemas reject malformed calls before any network or cache
// work happens.
const (
	planRouteSchema = `{
		"type": "object",
		"properties": {
			"origin":      {"type": "string", "minLength": 1},
			"destination": {"type": "string", "minLength": 1},
			"profile": {
				"enum": ["driving-car", "driving-hgv", "cycling-regular", "foot-walking", "wheelchair"]
			}
		},
		"required": ["origin", "destination"],
		"additionalProperties": false
	}`

	clearCacheSchema = `{
		"type": "object",
		"properties": {
			"cache_type": {"enum": ["geocoding", "routes", "all"]}
		},
		"additionalProperties": false
	}`
)

// compileSchema compiles an inline schema document. Panics on failure since
// the schemas are compile-time constants; a bad one is a programming error.
func compileSchema(name, schema string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(schema)))
	if err != nil {
		panic(fmt.Sprintf("invalid %s schema: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("invalid %s schema: %v", name, err))
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("invalid %s schema: %v", name, err))
	}
	return compiled
}

var (
	planRouteValidator  = compileSchema("plan_route.json", planRouteSchema)   //nolint:gochecknoglobals // Compiled once
	clearCacheValidator = compileSchema("clear_cache.json", clearCacheSchema) //nolint:gochecknoglobals // Compiled once
)

// validatePayload checks payload against the compiled schema.
func validatePayload(validator *jsonschema.Schema, payload json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("malformed service payload: %w", err)
	}
	if err := validator.Validate(doc); err != nil {
		return fmt.Errorf("invalid service payload: %w", err)
	}
	return nil
}
