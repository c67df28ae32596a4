package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// ConfigurationError reports an invalid run parameter. It is fatal: validation
// runs at load time, before any simulation or evolution starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// validate is shared; validator.Validate caches struct metadata.
var validate = validator.New()

// Validate checks every parameter range. The first violation is returned as a
// *ConfigurationError.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			return &ConfigurationError{
				Field:  ve.Namespace(),
				Reason: fmt.Sprintf("failed %q (value %v)", ve.Tag(), ve.Value()),
			}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	// Cross-field rules the tag language can't express.
	elite := int(math.Ceil(float64(c.Simulation.Count) * c.Genetics.EliteRatio))
	if elite > c.Simulation.Count {
		return &ConfigurationError{
			Field:  "genetics.elite_ratio",
			Reason: fmt.Sprintf("elite count %d exceeds simulation count %d", elite, c.Simulation.Count),
		}
	}
	if c.Physics.ParticleRadius*2 >= c.World.Size/2 {
		return &ConfigurationError{
			Field:  "physics.particle_radius",
			Reason: "too large for the configured world size",
		}
	}

	return nil
}
