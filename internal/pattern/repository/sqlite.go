package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"polygo/internal/pattern/models"

	"github.com/google/uuid"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const defaultMigration = "migrations/001_init_patterns.sql"

// ErrNotFound is returned when no saved scheme has the requested id.
var ErrNotFound = errors.New("not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init runs migrations. An empty path runs the embedded migration.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Save stores a scheme document and returns the record with its new id.
func (r *Repository) Save(ctx context.Context, name string, numSides int, doc []byte) (*models.SavedScheme, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO saved_schemes (id, name, num_sides, scheme)
        VALUES (?, ?, ?, ?)
    `, id, name, numSides, doc)
	if err != nil {
		return nil, fmt.Errorf("insert scheme: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.SavedScheme, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, num_sides, scheme, created_at
        FROM saved_schemes
        WHERE id = ?
    `, id)

	var s models.SavedScheme
	if err := row.Scan(&s.ID, &s.Name, &s.NumSides, &s.Scheme, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns saved schemes without their documents, newest first.
func (r *Repository) List(ctx context.Context) ([]models.SavedScheme, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, num_sides, created_at
        FROM saved_schemes
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	defer rows.Close()

	out := []models.SavedScheme{}
	for rows.Next() {
		var s models.SavedScheme
		if err := rows.Scan(&s.ID, &s.Name, &s.NumSides, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_schemes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scheme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping backs the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	var (
		data []byte
		err  error
	)
	if migrationsPath == "" {
		data, err = migrationsFS.ReadFile(defaultMigration)
	} else {
		data, err = os.ReadFile(migrationsPath)
	}
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite opens the sqlite database at path.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
