// Package s3 implements source.Source for Amazon S3.
//
//	src, err := s3.NewFromConfig(ctx, "my-bucket", "snapshots/")
//	rc, err := src.Open(ctx, "records.jsonl.zst")
package s3
