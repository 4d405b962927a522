// Package storage keeps a read-only SQLite snapshot of the survey. The
// snapshot is written offline by lonnstall-import and only read by the
// dashboard.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lonnstall/internal/core"
	"lonnstall/internal/source"
)

// ErrNoSnapshot is returned when the database has never been imported into.
var ErrNoSnapshot = errors.New("no snapshot imported")

type SQLiteRepository struct {
	db   *sql.DB
	path string
}

var _ source.DatasetReader = (*SQLiteRepository)(nil)

// SnapshotInfo describes the most recent import.
type SnapshotInfo struct {
	Source     string
	Records    int
	Skipped    int
	ImportedAt time.Time
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const insertRecord = `INSERT INTO salary_records
	(position, gender, years_education, years_experience, location, job_type, field, salary, has_bonus, has_commission)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// ReplaceSnapshot atomically replaces the stored records with records.
// progress, when non-nil, is called after each inserted record.
func (r *SQLiteRepository) ReplaceSnapshot(ctx context.Context, origin string, records []core.SalaryRecord, skipped int, progress func()) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM salary_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i,
			rec.Gender, rec.YearsEducation, rec.YearsExperience,
			rec.Location, rec.JobType, rec.Field, rec.Salary,
			rec.HasBonus, rec.HasCommission,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
		if progress != nil {
			progress()
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, records, skipped, imported_at) VALUES (?, ?, ?, ?)`,
		origin, len(records), skipped, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns metadata of the last import, or ErrNoSnapshot.
func (r *SQLiteRepository) LatestSnapshot(ctx context.Context) (SnapshotInfo, error) {
	var info SnapshotInfo
	err := r.db.QueryRowContext(ctx,
		`SELECT source, records, skipped, imported_at FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&info.Source, &info.Records, &info.Skipped, &info.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotInfo{}, ErrNoSnapshot
	}
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("read snapshot metadata: %w", err)
	}
	return info, nil
}

// ReadDataset loads every stored record in import order.
func (r *SQLiteRepository) ReadDataset(ctx context.Context) (source.Result, error) {
	info, err := r.LatestSnapshot(ctx)
	if err != nil {
		return source.Result{}, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT gender, years_education, years_experience, location,
		job_type, field, salary, has_bonus, has_commission
		FROM salary_records ORDER BY position`)
	if err != nil {
		return source.Result{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]core.SalaryRecord, 0, info.Records)
	for rows.Next() {
		var rec core.SalaryRecord
		if err := rows.Scan(&rec.Gender, &rec.YearsEducation, &rec.YearsExperience, &rec.Location,
			&rec.JobType, &rec.Field, &rec.Salary, &rec.HasBonus, &rec.HasCommission); err != nil {
			return source.Result{}, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return source.Result{}, fmt.Errorf("iterate records: %w", err)
	}
	return source.Result{
		Dataset: core.NewDataset(records),
		Skipped: info.Skipped,
		Source:  "sqlite:" + r.path + " (" + info.Source + ")",
	}, nil
}
