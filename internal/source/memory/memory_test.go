package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lonnstall/internal/core"
)

func TestNewServesRecords(t *testing.T) {
	s := New([]core.SalaryRecord{{Gender: "mann", Field: "backend", Salary: 700000}})
	res, err := s.ReadDataset(context.Background())
	if err != nil || res.Dataset.Len() != 1 || res.Skipped != 0 {
		t.Fatalf("unexpected result: %+v err=%v", res, err)
	}
	raw, err := s.FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	ds, _, err := core.DecodeDataset(raw)
	if err != nil || ds.Len() != 1 {
		t.Fatalf("raw document does not decode: %v", err)
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lonn.json")
	content := `[
	 {"kjønn":"kvinne","års utdanning":5,"års erfaring":2,"arbeidssted":"Oslo","jobbtype":"fast","fag":"backend","lønn":720000},
	 {"kjønn":"mann","års utdanning":-1,"års erfaring":2,"arbeidssted":"Oslo","jobbtype":"fast","fag":"backend","lønn":720000}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	res, _ := s.ReadDataset(context.Background())
	if res.Dataset.Len() != 1 || res.Skipped != 1 || res.Source != path {
		t.Fatalf("unexpected result: len=%d skipped=%d source=%s", res.Dataset.Len(), res.Skipped, res.Source)
	}
}

func TestNewFromFileErrors(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte("not json"), 0o644)
	if _, err := NewFromFile(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}
}
