package metadata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

// SchemaURL is the resource name the embedded schema is compiled under.
const SchemaURL = "https://github.com/vvka-141/usheader/schema/metadata.json"

// Schema returns the JSON Schema describing the raw configuration accepted
// by Validate, for editor integration.
func Schema() []byte {
	return slices.Clone(schemaJSON)
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(SchemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(SchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// CheckSchema validates raw against the embedded JSON Schema. It is a second
// opinion used by `usheader schema --check`; Validate stays authoritative.
func CheckSchema(raw any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	payload, err := toJSONValue(raw)
	if err != nil {
		return err
	}
	return schema.Validate(payload)
}

// toJSONValue converts decoded YAML into the value shapes produced by
// encoding/json, which is what the schema validator expects.
func toJSONValue(raw any) (any, error) {
	normalized := normalizeKeys(raw)
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode metadata as JSON: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode metadata JSON: %w", err)
	}
	return out, nil
}

func normalizeKeys(val any) any {
	switch t := val.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalizeKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeKeys(item)
		}
		return out
	}
	return val
}
