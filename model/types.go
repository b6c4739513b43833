package model

import (
	"fmt"

	"github.com/hupe1980/vecfilter/metadata"
)

// Record is one stored item of a collection.
//
// Records are treated as immutable views: nothing in this module writes to
// a Record it was handed.
type Record struct {
	// ID is unique within a collection.
	ID string
	// Metadata maps field names to typed values. It may be nil.
	Metadata metadata.Document
	// Document is the optional free-text body. Nil means the record has no
	// document, which is different from an empty document.
	Document *string
}

// HasDocument reports whether the record carries document text.
func (r Record) HasDocument() bool {
	return r.Document != nil
}

// Text returns the document text, or "" when absent.
func (r Record) Text() string {
	if r.Document == nil {
		return ""
	}
	return *r.Document
}

// String returns a short representation for logs.
func (r Record) String() string {
	return fmt.Sprintf("Record(%s, fields=%d, document=%t)", r.ID, len(r.Metadata), r.Document != nil)
}

// RecordBuilder builds a Record fluently.
type RecordBuilder struct {
	rec Record
}

// NewRecord starts building a record with the given id.
func NewRecord(id string) *RecordBuilder {
	return &RecordBuilder{rec: Record{ID: id}}
}

// WithMetadata sets a single metadata field.
func (b *RecordBuilder) WithMetadata(key string, v metadata.Value) *RecordBuilder {
	if b.rec.Metadata == nil {
		b.rec.Metadata = make(metadata.Document)
	}
	b.rec.Metadata[key] = v
	return b
}

// WithMetadataDocument replaces the metadata with a copy of doc.
func (b *RecordBuilder) WithMetadataDocument(doc metadata.Document) *RecordBuilder {
	b.rec.Metadata = doc.Clone()
	return b
}

// WithDocument sets the document text.
func (b *RecordBuilder) WithDocument(text string) *RecordBuilder {
	b.rec.Document = &text
	return b
}

// Build returns the record. The record owns a copy of the metadata, so
// further builder calls do not change records already built.
func (b *RecordBuilder) Build() Record {
	rec := b.rec
	rec.Metadata = b.rec.Metadata.Clone()
	return rec
}

// IDs returns the ids of records in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	return ids
}
