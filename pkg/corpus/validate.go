package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("document.json", doc); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("document.json")
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a raw decoded document against the corpus schema.
// The value is round-tripped through JSON first so YAML and TOML decodings
// present the same types to the validator.
func validateDocument(raw map[string]any) error {
	schema, err := documentSchema()
	if err != nil {
		return fmt.Errorf("compiling document schema: %w", err)
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}
	return schema.Validate(value)
}
