// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcribe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPromptFile_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"prompt: |\n  Transcribe to German markdown.\n",
	), 0o644))

	prompts, err := LoadPromptFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Transcribe to German markdown.\n", prompts.Prompt)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultRectPrompt, prompts.RectPrompt)
	assert.Equal(t, DefaultRolePrompt, prompts.RolePrompt)
}

func TestLoadPromptFile_AllKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"prompt: p\nrect_prompt: 'boxes: %s'\nrole_prompt: r\n",
	), 0o644))

	prompts, err := LoadPromptFile(path)
	require.NoError(t, err)

	assert.Equal(t, "p", prompts.Prompt)
	assert.Equal(t, "boxes: %s", prompts.RectPrompt)
	assert.Equal(t, "r", prompts.RolePrompt)
}

func TestLoadPromptFile_Missing(t *testing.T) {
	_, err := LoadPromptFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadPromptFile_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unclosed"), 0o644))

	_, err := LoadPromptFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing prompt file")
}

func TestUserText(t *testing.T) {
	prompts := DefaultPrompts()

	t.Run("no regions uses the plain prompt", func(t *testing.T) {
		assert.Equal(t, prompts.Prompt, prompts.UserText(nil))
	})

	t.Run("regions are listed in the rect prompt", func(t *testing.T) {
		text := prompts.UserText([]string{"0_0.png", "0_1.png"})
		assert.Contains(t, text, "(0_0.png, 0_1.png)")
		assert.True(t, strings.HasSuffix(text, prompts.Prompt))
	})
}
