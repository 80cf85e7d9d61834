//go:build unit
// +build unit

package connector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type LocalArtifactConnectorTest struct {
	Connector *LocalArtifactConnector
	Root      string
}

func NewLocalArtifactConnectorTest(t *testing.T) *LocalArtifactConnectorTest {
	root := t.TempDir()
	settings := &config.ArtifactSettings{
		Provider: config.LocalArtifactProvider,
		RootDir:  root,
	}

	connector, err := NewLocalArtifactConnector(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return &LocalArtifactConnectorTest{
		Connector: connector,
		Root:      root,
	}
}

func TestLocalArtifactConnector_UploadDownloadDelete(t *testing.T) {
	lt := NewLocalArtifactConnectorTest(t)
	ctx := context.Background()
	key := "executions/nb/exec.html"
	data := []byte("<!DOCTYPE html><html><body><p>hello</p></body></html>")

	obj, err := lt.Connector.Upload(ctx, key, data)
	require.NoError(t, err)
	assert.Equal(t, key, obj.Key)
	assert.Equal(t, int64(len(data)), obj.Size)
	assert.Contains(t, obj.ContentType, "text/html")
	assert.FileExists(t, filepath.Join(lt.Root, "executions", "nb", "exec.html"))

	downloaded, err := lt.Connector.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, downloaded)

	require.NoError(t, lt.Connector.Delete(ctx, key))
	_, err = lt.Connector.Download(ctx, key)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLocalArtifactConnector_UploadReplaces(t *testing.T) {
	lt := NewLocalArtifactConnectorTest(t)
	ctx := context.Background()

	_, err := lt.Connector.Upload(ctx, "packages/nb/a.zip", []byte("first"))
	require.NoError(t, err)
	_, err = lt.Connector.Upload(ctx, "packages/nb/a.zip", []byte("second"))
	require.NoError(t, err)

	data, err := lt.Connector.Download(ctx, "packages/nb/a.zip")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(lt.Root, "packages", "nb"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload files must not remain")
}

func TestLocalArtifactConnector_DeleteMissingIsNoop(t *testing.T) {
	lt := NewLocalArtifactConnectorTest(t)
	assert.NoError(t, lt.Connector.Delete(context.Background(), "executions/none/none.html"))
}

func TestLocalArtifactConnector_RejectsInvalidKeys(t *testing.T) {
	lt := NewLocalArtifactConnectorTest(t)
	ctx := context.Background()

	for _, key := range []string{"", "/etc/passwd", "../outside", "a/../../b", "a//b", "a\\b", "./a"} {
		t.Run(key, func(t *testing.T) {
			_, err := lt.Connector.Upload(ctx, key, []byte("x"))
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)

			_, err = lt.Connector.Download(ctx, key)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestNewArtifactConnector(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	ctx := context.Background()

	connector, err := NewArtifactConnector(ctx, &config.ArtifactSettings{
		Provider: config.LocalArtifactProvider,
		RootDir:  t.TempDir(),
	}, log)
	require.NoError(t, err)
	assert.IsType(t, &LocalArtifactConnector{}, connector)

	_, err = NewArtifactConnector(ctx, &config.ArtifactSettings{Provider: "gcs"}, log)
	assert.Error(t, err)

	_, err = NewArtifactConnector(ctx, &config.ArtifactSettings{Provider: config.MinioArtifactProvider}, log)
	assert.Error(t, err)
}
