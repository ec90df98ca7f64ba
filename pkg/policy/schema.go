package policy

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/macropower/gradlepin/pkg/pinerrors"
)

// Schema returns the JSON schema of a policy file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}

	js := r.ReflectFromType(reflect.TypeOf(Policy{}))
	js.Title = "gradlepin policy"

	b, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pinerrors.ErrJSONMarshal, err)
	}

	return b, nil
}
