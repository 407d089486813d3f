package code

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/tableqa/frame"
)

// DefaultResultVar is the variable generated code assigns its result to.
const DefaultResultVar = "output_dict"

// DefaultTimeout bounds a single execution when neither the params nor
// the config set one.
const DefaultTimeout = 10 * time.Second

// Config holds the configuration for a code executor.
type Config struct {
	// Engine is the pluggable code execution engine.
	// Required.
	Engine Engine

	// Dataset is the frame bound as df inside every execution.
	// Required.
	Dataset *frame.Frame

	// AllowList holds the import paths generated code may use.
	// Required.
	AllowList []string

	// ResultVar names the variable the snippet must assign.
	// Defaults to DefaultResultVar.
	ResultVar string

	// DefaultTimeout is the default execution timeout when not specified
	// in ExecuteParams. Defaults to DefaultTimeout.
	DefaultTimeout time.Duration

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}
	if c.Dataset == nil {
		missing = append(missing, "Dataset")
	}
	if len(c.AllowList) == 0 {
		missing = append(missing, "AllowList")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("%w: negative DefaultTimeout %v", ErrConfiguration, c.DefaultTimeout)
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.ResultVar == "" {
		c.ResultVar = DefaultResultVar
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
}
