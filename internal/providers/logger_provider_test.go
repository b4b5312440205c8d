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

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "normalize", TypeNormalize.String())
	assert.Equal(t, "unknown", TypeEnum(99).String())
}

func TestNewLogProvider_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message %d", 1)
	logger.Debugf(TypeAggregate, "hidden at info level")
	logger.Warnf(TypeArchive, "archive warning")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message 1")
	assert.Contains(t, string(data), `"type":"archive"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewLogProvider_DebugFlagLowersLevel(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Debug: true,
		Logger: structures.LoggerConfig{
			Level: "error",
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Debugf(TypeNormalize, "trace me")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "trace me")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	require.Error(t, err)
	assert.Equal(t, "verbose", goerr.Values(err)["level"])
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "verbose"},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
