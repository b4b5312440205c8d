package providers

import (
	"os"
	"path/filepath"
	"testing"
	"transcript/internal/structures"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `usersFile: /data/export/users.json
inputDir: /data/export
outputDir: /data/html
timezone: UTC
logger:
  level: warn
stats:
  compress: true
userColors:
  - id: U01ABCDEF
    color: "#a0b0c0"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0644))
	return path
}

func TestNewConfigProvider_LoadsFile(t *testing.T) {
	path := writeTestConfig(t)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.Equal(t, path, conf.Path)
	assert.True(t, conf.Debug)
	assert.Equal(t, "/data/export/users.json", conf.UsersFile)
	assert.Equal(t, "/data/html", conf.OutputDir)
	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Equal(t, "drop", conf.Threading.OrphanPolicy)
	assert.True(t, conf.Stats.Compress)
	require.Len(t, conf.UserColors, 1)
	assert.Equal(t, "U01ABCDEF", conf.UserColors[0].ID)
	assert.Equal(t, "#a0b0c0", conf.UserColors[0].Color)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeTestConfig(t)
	t.Setenv("TRANSCRIPT_OUTPUT_DIR", "/elsewhere")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", conf.OutputDir)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.Error(t, err)
	assert.Equal(t, path, goerr.Values(err)["path"])
}

func TestSaveUserColors_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.yaml")
	err := SaveUserColors(&structures.Config{Path: path})
	require.Error(t, err)
	assert.Equal(t, path, goerr.Values(err)["path"])
}

func TestSaveUserColors_KeepsIDCase(t *testing.T) {
	path := writeTestConfig(t)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	conf.UserColors = append(conf.UserColors, structures.UserColor{ID: "U02XYZ", Color: "#b1c2d3"})
	require.NoError(t, SaveUserColors(conf))

	reloaded, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	require.Len(t, reloaded.UserColors, 2)
	assert.Equal(t, "U01ABCDEF", reloaded.UserColors[0].ID)
	assert.Equal(t, "U02XYZ", reloaded.UserColors[1].ID)
	assert.Equal(t, "#b1c2d3", reloaded.UserColors[1].Color)
	assert.Equal(t, "/data/export", reloaded.InputDir)
}
