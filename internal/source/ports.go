// Package source defines where the salary dataset comes from. Adapters live
// in the subpackages; the SQLite snapshot lives in internal/storage.
package source

import (
	"context"
	"errors"

	"lonnstall/internal/core"
)

var (
	// ErrUpstreamStatus is returned when the upstream answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrInvalidPayload is returned when the upstream body is not valid JSON.
	ErrInvalidPayload = errors.New("upstream payload is not valid JSON")
	// ErrEmptyDataset is returned when a source yields no usable records.
	ErrEmptyDataset = errors.New("dataset contains no valid records")
)

// Ports for outbound adapters.
type (
	// DatasetReader loads the whole dataset in one call.
	DatasetReader interface {
		ReadDataset(ctx context.Context) (Result, error)
	}

	// RawFetcher returns the upstream JSON document unchanged.
	RawFetcher interface {
		FetchRaw(ctx context.Context) ([]byte, error)
	}
)

// Result is a loaded dataset plus how many input records were rejected.
type Result struct {
	Dataset core.Dataset
	Skipped int
	Source  string
}
