//go:build integration
// +build integration

package connector

import (
	"context"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MinioArtifactConnectorTest struct {
	Connector *MinioArtifactConnector
}

func NewMinioArtifactConnectorTest(t *testing.T) *MinioArtifactConnectorTest {
	settings := SetupMinio(t)

	connector, err := NewMinioArtifactConnector(context.Background(), settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	return &MinioArtifactConnectorTest{Connector: connector}
}

func TestMinioArtifactConnector(t *testing.T) {
	mt := NewMinioArtifactConnectorTest(t)
	ctx := context.Background()

	t.Run("upload and download", func(t *testing.T) {
		data := []byte("<html><body>rendered</body></html>")

		obj, err := mt.Connector.Upload(ctx, "executions/nb/one.html", data)
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), obj.Size)
		assert.Contains(t, obj.ContentType, "text/html")

		downloaded, err := mt.Connector.Download(ctx, "executions/nb/one.html")
		require.NoError(t, err)
		assert.Equal(t, data, downloaded)
	})

	t.Run("download missing object", func(t *testing.T) {
		_, err := mt.Connector.Download(ctx, "executions/nb/missing.html")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := mt.Connector.Upload(ctx, "packages/nb/p.zip", []byte("PK"))
		require.NoError(t, err)

		require.NoError(t, mt.Connector.Delete(ctx, "packages/nb/p.zip"))
		require.NoError(t, mt.Connector.Delete(ctx, "packages/nb/p.zip"))

		_, err = mt.Connector.Download(ctx, "packages/nb/p.zip")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
