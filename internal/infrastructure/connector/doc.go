// Package connector provides artifact storage backends for rendered
// execution outputs and reproducibility packages: the local filesystem and
// S3 compatible MinIO buckets.
package connector
