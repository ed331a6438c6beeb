package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string            `json:"base_url"`
	Timeout float64           `json:"timeout_seconds"`
	Headers map[string]string `json:"headers"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "findbehandler.local.json5", LocalPath("findbehandler.json5"))
	require.Equal(t, filepath.Join("a", "b.local.json5"), LocalPath(filepath.Join("a", "b.json5")))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "findbehandler.json5")

	writeFile(t, name, `{
		// comments and trailing commas are fine
		base_url: "https://www.sundhed.dk",
		timeout_seconds: 10,
	}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://www.sundhed.dk", cfg.BaseUrl)
	require.Equal(t, 10.0, cfg.Timeout)

	writeFile(t, LocalPath(name), `{ base_url: "http://localhost:8080", headers: { a: "b" } }`)

	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseUrl)
	require.Equal(t, 10.0, cfg.Timeout)
	require.Equal(t, map[string]string{"a": "b"}, cfg.Headers)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "broken.json5")
	writeFile(t, name, `{ base_url: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{BaseUrl: "https://www.sundhed.dk", Timeout: 10}

	cfg, err := ReadConfigOr(filepath.Join(t.TempDir(), "missing.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	name := filepath.Join(t.TempDir(), "partial.json5")
	writeFile(t, name, `{ timeout_seconds: 2.5 }`)

	cfg, err = ReadConfigOr(name, defaults)
	require.NoError(t, err)
	require.Equal(t, "https://www.sundhed.dk", cfg.BaseUrl)
	require.Equal(t, 2.5, cfg.Timeout)
}
