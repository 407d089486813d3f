package exec

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/llm"
	"github.com/jonwraymond/tableqa/workflow"
)

// Default configuration values.
const (
	DefaultTimeout     = code.DefaultTimeout
	DefaultMaxAttempts = workflow.DefaultMaxAttempts
)

// Errors returned by Options validation.
var (
	ErrDatasetRequired = errors.New("exec: Dataset is required")
	ErrLLMRequired     = errors.New("exec: LLM is required")
)

// Options configures an Exec instance.
type Options struct {
	// Dataset is the table every question is asked about.
	// Required.
	Dataset *frame.Frame

	// LLM answers planning, synthesis and formatting prompts.
	// Required.
	LLM llm.Client

	// Catalog is the package allow-list for generated code.
	// Default: catalog.Default()
	Catalog *catalog.Catalog

	// Engine runs generated code.
	// Default: the yaegi interpreter
	Engine code.Engine

	// Logger receives structured logs.
	// Default: slog.Default()
	Logger *slog.Logger

	// Registerer receives workflow metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer

	// MaxAttempts is the total number of code syntheses per question.
	// Default: 3
	MaxAttempts int

	// DefaultTimeout bounds each execution of generated code.
	// Default: 10s
	DefaultTimeout time.Duration

	// PreviewRows is the number of rows shown in the schema preview.
	// Default: 2
	PreviewRows int

	// Concurrency bounds AskBatch.
	// Default: 4
	Concurrency int

	// OnProgress observes stage transitions.
	OnProgress workflow.ProgressCallback
}

// validate checks that required fields are set.
func (o *Options) validate() error {
	if o.Dataset == nil {
		return ErrDatasetRequired
	}
	if o.LLM == nil {
		return ErrLLMRequired
	}
	return nil
}

// applyDefaults sets default values for unset optional fields. Engine is
// filled in by New.
func (o *Options) applyDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.DefaultTimeout == 0 {
		o.DefaultTimeout = DefaultTimeout
	}
}
