package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `Title = "test"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[DB]
GormEngine = "sqlite"
Name = "file::memory:"

[Log]
LogLevel = "error"
AppName = "agency-admin"
ServiceName = "agency-admin"
`

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(testConfig), 0o600))

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--json", "--config", dir, "--env-file", filepath.Join(dir, "missing.env")})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		dumpJSON = false
	})

	require.NoError(t, Execute())

	var dumped map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &dumped), out.String())
	assert.Equal(t, "test", dumped["Title"])
}
