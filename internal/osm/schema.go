package osm

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed overpass_schema.json
var overpassSchema string

var responseSchema = jsonschema.MustCompileString("overpass_schema.json", overpassSchema)

// validateResponse checks a decoded Overpass response against the expected
// shape before any elements are interpreted.
func validateResponse(doc any) error {
	if err := responseSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("overpass response: %s", flattenValidationError(ve))
		}
		return fmt.Errorf("overpass response: %w", err)
	}
	return nil
}

func flattenValidationError(ve *jsonschema.ValidationError) string {
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return strings.TrimSpace(loc + ": " + leaf.Message)
}
