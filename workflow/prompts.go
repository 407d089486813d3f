package workflow

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/tableqa/workflow/prompts"
)

// Prompts contains the system prompts loaded from embedded files.
type Prompts struct {
	Plan     string // Task planning
	Generate string // Fresh code synthesis
	Repair   string // Code repair after a failed execution
	Format   string // Answer formatting
}

// LoadPrompts loads all prompts from the embedded filesystem.
func LoadPrompts() (*Prompts, error) {
	p := &Prompts{}

	var err error
	if p.Plan, err = loadPrompt("PLAN.md"); err != nil {
		return nil, fmt.Errorf("failed to load PLAN: %w", err)
	}
	if p.Generate, err = loadPrompt("GENERATE.md"); err != nil {
		return nil, fmt.Errorf("failed to load GENERATE: %w", err)
	}
	if p.Repair, err = loadPrompt("REPAIR.md"); err != nil {
		return nil, fmt.Errorf("failed to load REPAIR: %w", err)
	}
	if p.Format, err = loadPrompt("FORMAT.md"); err != nil {
		return nil, fmt.Errorf("failed to load FORMAT: %w", err)
	}
	return p, nil
}

func loadPrompt(path string) (string, error) {
	data, err := prompts.PromptsFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
