package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lonnstall/internal/config"
	"lonnstall/internal/log"
	"lonnstall/internal/source/memory"
	"lonnstall/internal/source/remote"
	"lonnstall/internal/storage"
)

const sampleJSON = `[
 {"kjønn":"mann","års utdanning":5,"års erfaring":3,"arbeidssted":"Oslo","jobbtype":"fast","fag":"backend","lønn":700000,"inkludert bonus?":false,"inkludert provisjon?":false},
 {"kjønn":"kvinne","års utdanning":3,"års erfaring":8,"arbeidssted":"Bergen","jobbtype":"konsulent","fag":"frontend","lønn":810000,"inkludert bonus?":true,"inkludert provisjon?":false}
]`

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", UpstreamURL: "https://example.com"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.UpstreamURL != "https://example.com" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"remote needs nothing", Config{Type: RemoteBackend}, false},
		{"memory needs file", Config{Type: MemoryBackend}, true},
		{"sqlite needs path", Config{Type: SQLiteBackend}, true},
		{"sheets needs id", Config{Type: SheetsBackend}, true},
		{"unknown type", Config{Type: "csv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "lonn.json")
	if err := os.WriteFile(dataset, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	f := NewFactory(log.Discard().Logger)
	ctx := context.Background()

	t.Run("remote", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: RemoteBackend})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		client, ok := res.Reader.(*remote.Client)
		if !ok || client.URL() != remote.DefaultURL {
			t.Fatalf("unexpected reader %T", res.Reader)
		}
		if err := res.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})

	t.Run("memory", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, DatasetFile: dataset})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		if _, ok := res.Reader.(*memory.Store); !ok {
			t.Fatalf("unexpected reader %T", res.Reader)
		}
		got, err := res.Reader.ReadDataset(ctx)
		if err != nil || got.Dataset.Len() != 2 {
			t.Fatalf("ReadDataset = %d records, err %v", got.Dataset.Len(), err)
		}
	})

	t.Run("memory missing file", func(t *testing.T) {
		if _, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, DatasetFile: filepath.Join(dir, "nope.json")}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("sqlite without snapshot", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "lonn.db")})
		if err != nil {
			t.Fatalf("CreateBackend: %v", err)
		}
		defer res.Close()
		if _, err := res.Reader.ReadDataset(ctx); !errors.Is(err, storage.ErrNoSnapshot) {
			t.Fatalf("expected ErrNoSnapshot, got %v", err)
		}
	})
}

func TestCreateBackendLogsSQLiteMigration(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Format: "json", Output: &buf})
	res, err := NewFactory(logger.Logger).CreateBackend(context.Background(),
		Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "lonn.db")})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer res.Close()

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line[log.FieldComponent] != log.ComponentStorage || line[log.FieldOperation] != log.OpMigrate {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	want := []string{"remote", "memory", "sqlite", "sheets"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
