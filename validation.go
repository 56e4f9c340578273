package sdk

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

// ValidateMetadata validates plugin metadata against the struct tags on
// Metadata. Hosts call this after fetching a guest's _manifest export;
// guests may call it before registering to fail fast.
func ValidateMetadata(m Metadata) error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("metadata validation failed: %w", err)
	}

	seen := make(map[string]struct{}, len(m.Operations))
	for _, op := range m.Operations {
		if _, dup := seen[op.Name]; dup {
			return fmt.Errorf("metadata validation failed: duplicate operation %q", op.Name)
		}
		seen[op.Name] = struct{}{}
	}
	return nil
}
