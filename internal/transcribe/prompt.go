// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcribe

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultPrompt instructs the model to transcribe the page image to
// markdown verbatim.
const DefaultPrompt = `Use markdown syntax to convert text recognized in images to markdown format output. You must:
1. Output in the same language as recognized in the image. For example, if English text is detected, the output must be in English.
2. Do not explain or output irrelevant text, output the image content directly. For example, do not output examples like "Here is the markdown text I generated from the image content:", instead output the markdown directly.
3. Content should not be wrapped in ` + "```markdown ```" + `, paragraph formulas should use $$ $$ format, inline formulas should use $ $ format, ignore long lines, ignore page numbers and other header/footer content.
Again, do not explain or output irrelevant text, output the image content directly. Be careful to use the $$ $$ format whenever you output latex.
`

// DefaultRectPrompt tells the model how to reference the labeled region
// boxes; %s receives the comma-separated region image names.
const DefaultRectPrompt = `In the image, some areas are marked with red boxes and names (%s).
If the area is a table or image, use ![]() format to insert the name into the output content,
otherwise output the text content directly.
`

// DefaultRolePrompt is the system message framing the task.
const DefaultRolePrompt = `You are a PDF document parser, output the image content using markdown and latex syntax. Make a faithful word-for-word reproduction - do not summarise, do not rewrite, include everything.
`

// PromptSet holds the three prompts driving page transcription. Zero
// fields fall back to the defaults.
type PromptSet struct {
	Prompt     string `yaml:"prompt"`
	RectPrompt string `yaml:"rect_prompt"`
	RolePrompt string `yaml:"role_prompt"`
}

// DefaultPrompts returns the built-in English prompt set.
func DefaultPrompts() PromptSet {
	return PromptSet{
		Prompt:     DefaultPrompt,
		RectPrompt: DefaultRectPrompt,
		RolePrompt: DefaultRolePrompt,
	}
}

// LoadPromptFile reads a YAML prompt override file. Keys: prompt,
// rect_prompt, role_prompt; missing keys keep their defaults, so a file
// may override just one prompt (commonly for a different output
// language).
func LoadPromptFile(path string) (PromptSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PromptSet{}, fmt.Errorf("reading prompt file %s: %w", path, err)
	}

	var override PromptSet
	if err := yaml.Unmarshal(data, &override); err != nil {
		return PromptSet{}, fmt.Errorf("parsing prompt file %s: %w", path, err)
	}

	prompts := DefaultPrompts()
	if override.Prompt != "" {
		prompts.Prompt = override.Prompt
	}
	if override.RectPrompt != "" {
		prompts.RectPrompt = override.RectPrompt
	}
	if override.RolePrompt != "" {
		prompts.RolePrompt = override.RolePrompt
	}
	return prompts, nil
}

// UserText builds the user-message text for one page: the rect prompt
// naming the labeled regions, when any exist, followed by the
// transcription prompt.
func (p PromptSet) UserText(regionNames []string) string {
	if len(regionNames) == 0 {
		return p.Prompt
	}
	return fmt.Sprintf(p.RectPrompt, strings.Join(regionNames, ", ")) + p.Prompt
}
