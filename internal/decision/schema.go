package decision

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

// SchemaJSON is the canonical decision schema, also shown to the model
func SchemaJSON() string {
	return schemaJSON
}

func compileSchema() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("decision.schema.json", schemaJSON)
}

// violations flattens a validation error into sorted leaf messages
func violations(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.Strings(out)
	return out
}
