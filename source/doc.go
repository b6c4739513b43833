// Package source provides read-only access to record snapshots.
//
// A Source opens named objects. Local reads from the file system, Memory is
// an in-memory implementation for tests, and the minio and s3 subpackages
// read from object storage. A Router opens URIs such as
//
//	./records.jsonl
//	file:///data/records.jsonl.gz
//	minio://bucket/snapshots/records.jsonl.zst
//	s3://bucket/snapshots/records.jsonl.lz4
//
// by dispatching on the scheme.
package source
