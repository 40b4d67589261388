package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/plenum/internal/domain/mocks"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/config"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()
	var openedPath string
	handler := NewInitHandler(func(path string) (ports.MemberRegistry, error) {
		openedPath = path
		return mocks.NewRegistry(), nil
	})

	result, err := handler.Handle(t.Context(), tmpDir, InitOptions{})

	require.NoError(t, err)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, openedPath, result.DatabasePath)
	assert.Contains(t, result.DatabasePath, config.DefaultDatabaseFile)
	assert.True(t, config.Exists(tmpDir))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, config.WriteDefault(tmpDir))

	handler := NewInitHandler(func(string) (ports.MemberRegistry, error) {
		return mocks.NewRegistry(), nil
	})

	_, err := handler.Handle(t.Context(), tmpDir, InitOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInitHandler_Handle_SchemaError(t *testing.T) {
	registry := mocks.NewRegistry()
	registry.Err = errors.New("read-only file system")
	handler := NewInitHandler(func(string) (ports.MemberRegistry, error) {
		return registry, nil
	})

	_, err := handler.Handle(t.Context(), t.TempDir(), InitOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating registry schema")
}

func TestInitHandler_Handle_OpenError(t *testing.T) {
	handler := NewInitHandler(func(string) (ports.MemberRegistry, error) {
		return nil, errors.New("cannot open")
	})

	_, err := handler.Handle(t.Context(), t.TempDir(), InitOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening registry")
}

func TestInitHandler_Handle_Overrides(t *testing.T) {
	tmpDir := t.TempDir()
	handler := NewInitHandler(func(string) (ports.MemberRegistry, error) {
		return mocks.NewRegistry(), nil
	})

	_, err := handler.Handle(t.Context(), tmpDir, InitOptions{
		BaseURI:  "https://sejm.example/",
		Target:   config.TargetS3,
		S3Bucket: "plenum-site",
	})
	require.NoError(t, err)

	t.Setenv("PLENUM_BASE_URI", "")
	t.Setenv("PLENUM_S3_BUCKET", "")
	cfg, err := config.Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://sejm.example/", cfg.Export.BaseURI)
	assert.Equal(t, config.TargetS3, cfg.Export.Target)
	assert.Equal(t, "plenum-site", cfg.S3.Bucket)
	assert.Equal(t, "public", cfg.Export.Dir)
}

func TestInitHandler_Handle_InvalidOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	opened := false
	handler := NewInitHandler(func(string) (ports.MemberRegistry, error) {
		opened = true
		return mocks.NewRegistry(), nil
	})

	_, err := handler.Handle(t.Context(), tmpDir, InitOptions{Target: config.TargetS3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires s3.bucket")
	assert.False(t, opened)
	assert.False(t, config.Exists(tmpDir))
}
