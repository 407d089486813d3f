// Package prompts embeds the system prompts used by the workflow.
package prompts

import "embed"

//go:embed *.md
var PromptsFS embed.FS
