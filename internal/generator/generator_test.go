package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpolish/internal/config"
)

func TestShouldRun(t *testing.T) {
	t.Run("no command configured", func(t *testing.T) {
		r := NewRunner(config.GeneratorConfig{})
		assert.False(t, r.ShouldRun())
	})

	t.Run("skip via environment", func(t *testing.T) {
		t.Setenv("DOCPOLISH_SKIP_GENERATOR", "1")
		r := NewRunner(config.GeneratorConfig{Command: "true"})
		assert.False(t, r.ShouldRun())
	})

	t.Run("binary not in PATH", func(t *testing.T) {
		r := NewRunner(config.GeneratorConfig{Command: "definitely-not-a-real-generator"})
		assert.False(t, r.ShouldRun())
	})

	t.Run("available binary", func(t *testing.T) {
		r := NewRunner(config.GeneratorConfig{Command: "true"})
		assert.True(t, r.ShouldRun())
	})
}

func TestRun(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := NewRunner(config.GeneratorConfig{Command: "true", Dir: t.TempDir()})
		assert.NoError(t, r.Run(context.Background()))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		r := NewRunner(config.GeneratorConfig{Command: "false", Dir: t.TempDir()})
		err := r.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generator command")
	})
}
