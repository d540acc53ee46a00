package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and pointers", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.DisabledParsers = []string{"table"}
		original.Ignore = []string{"vendor/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.DisabledParsers[0] = "list"
		clone.Ignore = append(clone.Ignore, "x/**")
		*clone.DetectLanguages = false
		*clone.HTML.Safe = false

		assert.Equal(t, []string{"table"}, original.DisabledParsers)
		assert.Equal(t, []string{"vendor/**"}, original.Ignore)
		assert.True(t, *original.DetectLanguages)
		assert.True(t, *original.HTML.Safe)
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    *config.Config
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
			want:  &config.Config{},
		},
		{
			name:  "comments only",
			input: "# nothing here\n",
			want:  &config.Config{},
		},
		{
			name: "fields",
			input: `disabled_parsers: [table, subscript]
detect_languages: false
format: json
jobs: 4
html:
  heading_ids: true
serve:
  addr: ":9000"
`,
			want: &config.Config{
				DisabledParsers: []string{"table", "subscript"},
				DetectLanguages: config.Bool(false),
				Format:          config.FormatJSON,
				Jobs:            4,
				HTML:            config.HTMLConfig{HeadingIDs: config.Bool(true)},
				Serve:           config.ServeConfig{Addr: ":9000"},
			},
		},
		{
			name:    "unknown key",
			input:   "flavor: gfm\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "jobs: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Ignore = []string{"docs/generated/**"}

	data, err := original.ToYAMLWithHeader(config.DefaultTemplateHeader())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# gomdparse configuration")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FormatTree, cfg.Format)
		assert.True(t, cfg.ShouldDetectLanguages())
	})

	t.Run("full lists parsers", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full: true,
			Parsers: []config.ParserInfo{
				{ID: "yaml-header", Kind: "block", Before: []string{"horizontal-rule"}},
				{ID: "escape", Kind: "inline"},
			},
		})
		require.NoError(t, err)

		assert.Contains(t, string(data), "#   - yaml-header  # block parser, runs before horizontal-rule")
		assert.Contains(t, string(data), "#   - escape  # inline parser")

		_, err = config.FromYAML(data)
		require.NoError(t, err)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "tree", doc["format"])
	})
}

func TestShouldBackup(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.ShouldBackup())

	cfg.Backups.Mode = config.BackupNone
	assert.False(t, cfg.ShouldBackup())

	cfg.Backups = config.BackupsConfig{Enabled: config.Bool(false)}
	assert.False(t, cfg.ShouldBackup())
}
