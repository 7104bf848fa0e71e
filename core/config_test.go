package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_defaults(t *testing.T) {
	t.Setenv("ENV", "")

	conf, err := NewConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "DEV", conf.Env)
	assert.Equal(t, "Mahudhurio", conf.AppName)
	assert.False(t, conf.Debug)
	assert.False(t, conf.TestMode)
	assert.Equal(t, StorageConfig{Backend: StorageFile, DataFile: "students.txt"}, conf.Storage)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.True(t, conf.Database.DisableTLS)
}

func TestNewConfig_env(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("TEST_STORAGE_BACKEND", "Memory")
	t.Setenv("TEST_STORAGE_GROUPEDLOAD", "1")
	t.Setenv("TEST_DATABASE_PORT", "5433")

	conf, err := NewConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.True(t, conf.Debug)
	assert.Equal(t, StorageMemory, conf.Storage.Backend)
	assert.True(t, conf.Storage.GroupedLoad)
	assert.Equal(t, "localhost:5433", conf.Database.Address())
}

func TestNewConfig_dotEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PROD_STORAGE_BACKEND", "postgres") // environment wins over the file

	workDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(workDir, "config"), 0o755))
	dotEnv := "PROD_STORAGE_BACKEND=memory\nPROD_STORAGE_DATAFILE=/var/lib/mahudhurio/students.txt\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config", ".env.prod"), []byte(dotEnv), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("PROD_STORAGE_DATAFILE") })

	conf, err := NewConfig(workDir)
	require.NoError(t, err)
	assert.Equal(t, "PROD", conf.Env)
	assert.Equal(t, StoragePostgres, conf.Storage.Backend)
	assert.Equal(t, "/var/lib/mahudhurio/students.txt", conf.Storage.DataFile)
}

func TestNewConfig_invalid(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_STORAGE_BACKEND", "s3")

	conf, err := NewConfig(t.TempDir())
	assert.Nil(t, conf)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, `unknown storage backend "s3"`, err.Error())
}
