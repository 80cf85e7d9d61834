//go:build integration
// +build integration

package connector

import (
	"context"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

// TestMinioImage is the MinIO image started for integration tests
const TestMinioImage = "minio/minio:RELEASE.2024-01-16T16-07-38Z"

// TestBucket is the default test bucket name
const TestBucket = "test-artifacts"

// TestAccessKey and TestSecretKey are the root credentials of the test container
const (
	TestAccessKey = "minioadmin"
	TestSecretKey = "minioadmin"
)

// SetupMinio starts a MinIO container and returns settings pointing at it.
// The container is terminated when the test finishes.
func SetupMinio(t *testing.T) *config.ArtifactSettings {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping minio container in short mode")
	}

	ctx := context.Background()
	ctr, err := tcminio.Run(ctx, TestMinioImage,
		tcminio.WithUsername(TestAccessKey),
		tcminio.WithPassword(TestSecretKey),
	)
	t.Cleanup(func() {
		if ctr != nil {
			_ = testcontainers.TerminateContainer(ctr)
		}
	})
	require.NoError(t, err, "failed to start minio container")

	endpoint, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	return &config.ArtifactSettings{
		Provider:  config.MinioArtifactProvider,
		Endpoint:  endpoint,
		Bucket:    TestBucket,
		AccessKey: TestAccessKey,
		SecretKey: TestSecretKey,
	}
}
