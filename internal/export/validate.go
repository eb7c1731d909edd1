package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError is one schema violation with its instance location.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the snapshot against the JSON Schema at schemaPath.
// It returns every violation found, or nil if the snapshot conforms.
func (s *Snapshot) Validate(schemaPath string) []error {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return []error{fmt.Errorf("resolve schema path: %w", err)}
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return []error{fmt.Errorf("compile schema %s: %w", absPath, err)}
	}

	// Round-trip through JSON so the validator sees the wire shape.
	data, err := json.Marshal(s)
	if err != nil {
		return []error{fmt.Errorf("marshal snapshot: %w", err)}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{fmt.Errorf("unmarshal snapshot: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		var errs []error
		collectSchemaErrors(&errs, err)
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(ve.InstanceLocation),
			Err:  fmt.Errorf("%s", ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if isIndex(part) {
			path += fmt.Sprintf("[%s]", part)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
