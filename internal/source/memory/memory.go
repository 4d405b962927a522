// Package memory serves the dataset from process memory, either seeded from
// a slice or read once from a local copy of the survey file.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"lonnstall/internal/core"
	"lonnstall/internal/source"
)

type Store struct {
	dataset core.Dataset
	raw     []byte
	skipped int
	origin  string
}

var (
	_ source.DatasetReader = (*Store)(nil)
	_ source.RawFetcher    = (*Store)(nil)
)

// New serves records as they are.
func New(records []core.SalaryRecord) *Store {
	raw, _ := json.Marshal(records)
	return &Store{dataset: core.NewDataset(records), raw: raw, origin: "memory"}
}

// NewFromFile reads a JSON file in the upstream format. Invalid records are
// skipped and counted.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	ds, skipped, err := core.DecodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Store{dataset: ds, raw: data, skipped: skipped, origin: path}, nil
}

// ReadDataset returns the stored dataset.
func (s *Store) ReadDataset(_ context.Context) (source.Result, error) {
	return source.Result{Dataset: s.dataset, Skipped: s.skipped, Source: s.origin}, nil
}

// FetchRaw returns the JSON document the store was built from.
func (s *Store) FetchRaw(_ context.Context) ([]byte, error) {
	return append([]byte(nil), s.raw...), nil
}
