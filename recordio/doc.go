// Package recordio reads and writes record snapshots in JSON Lines format.
//
// Each line holds one record:
//
//	{"id":"doc-1","metadata":{"category":"ml","year":2024},"document":"Machine learning ..."}
//
// "metadata" and "document" are optional; a missing or null "document" means
// the record has no document. Integers stay integers.
//
// Snapshots may be compressed. The compression is chosen from the object
// name: ".gz" is gzip, ".zst" is zstd and ".lz4" is lz4 frame format.
package recordio
