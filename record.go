package adlib

import (
	"context"
	"time"
)

// Status describes the overall outcome of processing one source URL.
type Status string

// Record statuses.
//
// Absence of individual content fields never demotes a record from
// StatusSuccess: a field that could not be extracted is an expected
// outcome, not an error.
const (
	// StatusSuccess means extraction ran to completion, however many
	// fields came back absent.
	StatusSuccess Status = "success"

	// StatusError means an unexpected session-level fault occurred
	// (e.g. the document could not be constructed). The record still
	// carries its identity fields and an error description.
	StatusError Status = "error"

	// StatusFailed means the page could never be fetched. Failed
	// records are synthesized by the fetch layer and bypass the
	// extraction engine entirely.
	StatusFailed Status = "failed"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusError, StatusFailed:
		return true
	}
	return false
}

// CreativeType classifies the primary visual asset of an advertisement.
type CreativeType string

// Creative types. CreativeTypeVideoThumbnail marks a static preview
// image standing in for true video content (the lowest-quality creative
// the engine will accept).
const (
	CreativeTypeImage          CreativeType = "image"
	CreativeTypeVideo          CreativeType = "video"
	CreativeTypeVideoThumbnail CreativeType = "video_thumbnail"
	CreativeTypeUnknown        CreativeType = "unknown"
)

// AdRecord is the flat output record for one crawled archive page URL.
// Empty string fields mean the value was absent from the page; absence
// is a valid terminal state, not an error.
//
// A record is created at the start of an extraction session, populated
// field by field, finalized exactly once, and never mutated after it is
// handed to the sink.
type AdRecord struct {
	ID        string `json:"id"`
	SourceURL string `json:"sourceUrl"`

	// AdID is the numeric identifier parsed from the source URL's query
	// string. Empty if the URL does not match the expected pattern.
	AdID string `json:"adId,omitempty"`

	AdvertiserName string       `json:"advertiserName,omitempty"`
	LibraryID      string       `json:"libraryId,omitempty"`
	IsSponsored    bool         `json:"isSponsored"`
	AdText         string       `json:"adText,omitempty"`
	CreativeURL    string       `json:"creativeUrl,omitempty"`
	CreativeType   CreativeType `json:"creativeType"`
	CTAURL         string       `json:"ctaUrl,omitempty"`
	CTAText        string       `json:"ctaText,omitempty"`
	CTADomain      string       `json:"ctaDomain,omitempty"`

	// ContentHash is the xxHash of the raw page content, set by the
	// fetch layer for inspection and debugging. Empty for failed
	// records.
	ContentHash string `json:"contentHash,omitempty"`

	CrawledAt time.Time `json:"crawledAt"`

	// RetryCount is the number of fetch retries consumed before the
	// page was retrieved (or given up on).
	RetryCount int `json:"retryCount"`

	Status Status `json:"status"`

	// Error is present only when Status != StatusSuccess.
	Error string `json:"error,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *AdRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if !r.Status.Valid() {
		return Errorf(EINVALID, "record status %q invalid", r.Status)
	}
	if r.Status != StatusSuccess && r.Error == "" {
		return Errorf(EINVALID, "record with status %q requires an error description", r.Status)
	}
	return nil
}

// RecordWriter appends records to an output collection. The sink is
// append-only; no update or delete operations are defined.
type RecordWriter interface {
	CreateRecord(ctx context.Context, rec *AdRecord) error
}

// RecordService represents a service for managing stored records.
type RecordService interface {
	// CreateRecord appends a new record.
	CreateRecord(ctx context.Context, rec *AdRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*AdRecord, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*AdRecord, error)

	// CountByStatus returns the number of stored records per status.
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Status    *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
