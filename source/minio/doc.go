// Package minio implements source.Source for MinIO and S3-compatible storage.
package minio
