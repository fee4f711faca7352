package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablestate/internal/config"
)

// newTarget returns a Config with non-default values so tests can verify
// that absent overlay keys leave the original values intact.
func newTarget() *config.Config {
	return &config.Config{
		Version: "1.0.0",
		Table: config.TableConfig{
			PageSize:        50,
			MaxVisiblePages: 9,
		},
		Logging: config.LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
		Output: config.OutputConfig{
			DefaultFormat: "yaml",
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 50, target.Table.PageSize)
	assert.Equal(t, "warn", target.Logging.Level)
}

func TestShallowMergeYAML_SectionFallsBackToDefaults(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
table:
  page_size: 10
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 10, target.Table.PageSize)
	// The whole section is replaced, so the earlier 9 is not kept.
	assert.Equal(t, config.New().Table.MaxVisiblePages, target.Table.MaxVisiblePages)
}

func TestShallowMergeYAML_MultipleKeys(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
version: 1
logging:
  level: debug
  file: /tmp/tablestate.log
table:
  page_size: 5
  max_visible_pages: 3
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "1", target.Version)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "console", target.Logging.Format)
	assert.Equal(t, "/tmp/tablestate.log", target.Logging.File)
	assert.Equal(t, config.TableConfig{PageSize: 5, MaxVisiblePages: 3}, target.Table)
	assert.Equal(t, "yaml", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# nothing here\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, newTarget(), target)
		})
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
output:
  default_format: table
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "table", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		err := config.ShallowMergeYAML(nil, writeOverlay(t, "version: 1"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(newTarget(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("corrupted yaml", func(t *testing.T) {
		err := config.ShallowMergeYAML(newTarget(), writeOverlay(t, "table: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config YAML")
	})

	t.Run("wrong section type", func(t *testing.T) {
		err := config.ShallowMergeYAML(newTarget(), writeOverlay(t, "table:\n  page_size: many\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `applying section "table"`)
	})

	t.Run("failed section leaves target intact", func(t *testing.T) {
		target := newTarget()
		err := config.ShallowMergeYAML(target, writeOverlay(t, "output:\n  default_format: [json]\n"))
		require.Error(t, err)
		assert.Equal(t, newTarget(), target)
	})
}
