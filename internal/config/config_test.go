package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoad_FullConfig(t *testing.T) {
	t.Setenv("DOCNAV_TEST_OUT", "/tmp/site-out")
	path := writeConfig(t, `
content:
  root: ./content
  catalog: ./catalog.json
  route_base_path: /docs/
  locales: [" en ", "nb", ""]
versions:
  current: v2
  available:
    - id: v2
    - id: v1
      segment: "1.x"
  deprecated: [v1]
  strict: true
output:
  directory: ${DOCNAV_TEST_OUT}
  clean: true
  rewrite_links: false
build:
  concurrency: 8
monitoring:
  logging:
    level: DEBUG
    format: JSON
  metrics:
    textfile: metrics.prom
`)

	cfg, err := Load(path, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.Equal(t, "./content", cfg.Content.Root)
	assert.Equal(t, "docs", cfg.Content.RouteBasePath)
	assert.Equal(t, []string{"en", "nb"}, cfg.Content.Locales)
	assert.Equal(t, "/tmp/site-out", cfg.Output.Directory)
	assert.True(t, cfg.Output.Clean)
	assert.False(t, cfg.Output.RewriteEnabled())
	assert.Equal(t, 8, cfg.Build.Concurrency)
	assert.Equal(t, LogLevelDebug, cfg.Monitoring.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Monitoring.Logging.Format)
	assert.Equal(t, "metrics.prom", cfg.Monitoring.Metrics.Textfile)

	vc := cfg.VersionConfig()
	require.NotNil(t, vc)
	assert.Equal(t, "v2", vc.Current)
	assert.True(t, cfg.Versions.Strict)
	assert.Equal(t, "1.x", vc.SegmentFor("v1"))
	assert.True(t, vc.IsDeprecated("v1"))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "content:\n  catalog: c.yaml\n"), testLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.Content.Root)
	assert.Equal(t, "docs", cfg.Content.RouteBasePath)
	assert.Equal(t, "build/docnav", cfg.Output.Directory)
	assert.Equal(t, 4, cfg.Build.Concurrency)
	assert.True(t, cfg.Output.RewriteEnabled())
	assert.Equal(t, LogLevelInfo, cfg.Monitoring.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Monitoring.Logging.Format)
	assert.Nil(t, cfg.VersionConfig())
}

func TestLoad_InvalidEnumsWarnAndFallBack(t *testing.T) {
	var logs bytes.Buffer
	cfg, err := Load(writeConfig(t, "monitoring:\n  logging:\n    level: loud\n    format: xml\n"), testLogger(&logs))
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.Monitoring.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Monitoring.Logging.Format)
	assert.Contains(t, logs.String(), "monitoring.logging.level")
	assert.Contains(t, logs.String(), "monitoring.logging.format")
}

func TestLoad_VersionCrossReferences(t *testing.T) {
	body := `
versions:
  current: v3
  available:
    - id: v2
`
	var logs bytes.Buffer
	_, err := Load(writeConfig(t, body), testLogger(&logs))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "current version v3 is not listed")

	_, err = Load(writeConfig(t, body+"  strict: true\n"), testLogger(&bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Load(writeConfig(t, "content: [broken"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Load(writeConfig(t, "versions:\n  available: []\n"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = Load(writeConfig(t, "content:\n  root: out\noutput:\n  directory: ./out/\n"), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("DOCNAV_TEST_CATALOG=from-env.yaml\n"), 0o600))
	t.Setenv("DOCNAV_TEST_CATALOG", "")
	require.NoError(t, os.Unsetenv("DOCNAV_TEST_CATALOG"))

	cfg, err := Load(writeConfig(t, "content:\n  catalog: ${DOCNAV_TEST_CATALOG}\n"), testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Content.Catalog)
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("DOCNAV_TEST_ROOT=from-file\n"), 0o600))
	t.Setenv("DOCNAV_TEST_ROOT", "from-process")

	cfg, err := Load(writeConfig(t, "content:\n  root: ${DOCNAV_TEST_ROOT}\n"), testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Content.Root)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "docnav.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path, testLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.VersionConfig().Current)
	assert.Equal(t, []string{"en"}, cfg.Content.Locales)
	assert.True(t, cfg.Output.RewriteEnabled())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	_, err := Validate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Build.Concurrency)
}

func TestLogLevelSlog(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, NormalizeLogLevel("Debug").SlogLevel())
	assert.Equal(t, slog.LevelWarn, NormalizeLogLevel("warning").SlogLevel())
	assert.Equal(t, slog.LevelInfo, NormalizeLogLevel("nonsense").SlogLevel())
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat(" JSON "))
}

func TestValidateOutput(t *testing.T) {
	dir := t.TempDir()
	base := func() *Config {
		cfg := Default()
		cfg.Content.Root = filepath.Join(dir, "site", "docs")
		cfg.Content.Rendered = filepath.Join(dir, "site", "html")
		cfg.Content.Catalog = filepath.Join(dir, "site", "catalog.yaml")
		cfg.Output.Directory = filepath.Join(dir, "out")
		return cfg
	}

	tests := []struct {
		name    string
		output  string
		wantErr string
	}{
		{"sibling", filepath.Join(dir, "out"), ""},
		{"sibling with shared prefix", filepath.Join(dir, "site", "docs-out"), ""},
		{"equals root", filepath.Join(dir, "site", "docs"), "must not contain content.root"},
		{"ancestor of every input", filepath.Join(dir, "site"), "must not contain content.root"},
		{"trailing separator", filepath.Join(dir, "site") + string(filepath.Separator), "must not contain content.root"},
		{"filesystem root", string(filepath.Separator), "must not contain content.root"},
		{"inside root", filepath.Join(dir, "site", "docs", "_out"), "must not be inside content.root"},
		{"inside rendered", filepath.Join(dir, "site", "html", "nav"), "must not be inside content.rendered"},
		{"unclean path", filepath.Join(dir, "out", "..", "site", "docs", "."), "must not contain content.root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			cfg.Output.Directory = tt.output
			err := ValidateOutput(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestValidateOutput_CatalogOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Content.Root = filepath.Join(dir, "docs")
	cfg.Content.Catalog = filepath.Join(dir, "meta", "catalog.yaml")
	cfg.Output.Directory = filepath.Join(dir, "meta")

	err := ValidateOutput(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not contain content.catalog")
}

func TestValidateOutput_RelativePaths(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := Default()

	require.NoError(t, ValidateOutput(cfg))

	cfg.Output.Directory = "."
	err := ValidateOutput(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	cfg.Output.Directory = "docs/build"
	err = ValidateOutput(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be inside content.root")
}

func TestLoad_RejectsOutputHoldingInputs(t *testing.T) {
	dir := t.TempDir()
	body := "content:\n  root: " + filepath.Join(dir, "docs") +
		"\n  catalog: " + filepath.Join(dir, "catalog.yaml") +
		"\noutput:\n  directory: " + dir + "\n  clean: true\n"
	_, err := Load(writeConfig(t, body), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
