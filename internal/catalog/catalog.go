// Package catalog stores patient lists in SQLite for `cohort serve`.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/five82/cohort/internal/cohortapi"
)

var (
	// ErrNotFound is returned when a list id does not exist.
	ErrNotFound = errors.New("list not found")
	// ErrInvalid is returned for lists that fail validation.
	ErrInvalid = errors.New("invalid list")
)

// MaxPageSize caps page sizes requested through List.
const MaxPageSize = 200

// Catalog is a SQLite-backed list store.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and migrates it. Use
// ":memory:" for a throwaway database.
func Open(path string) (*Catalog, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if !memory {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	if memory {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db, now: time.Now}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// List returns one page of lists matching q, ordered by name.
func (c *Catalog) List(ctx context.Context, q cohortapi.ListQuery) (cohortapi.ListPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	q.PageSize = min(q.PageSize, MaxPageSize)

	var where []string
	var args []any
	if q.Filter.Starred {
		where = append(where, "l.starred = 1")
	}
	if q.Filter.Kind != "" {
		where = append(where, "l.kind = ?")
		args = append(args, string(q.Filter.Kind))
	}
	if q.Filter.NameContains != "" {
		where = append(where, `l.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q.Filter.NameContains)+"%")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lists l"+clause, args...).Scan(&total); err != nil {
		return cohortapi.ListPage{}, fmt.Errorf("count lists: %w", err)
	}

	query := `
		SELECT l.id, l.name, l.description, l.kind, l.starred, l.created_at,
		       (SELECT COUNT(*) FROM list_members m WHERE m.list_id = l.id)
		FROM lists l` + clause + `
		ORDER BY l.name COLLATE NOCASE, l.created_at
		LIMIT ? OFFSET ?`
	rows, err := c.db.QueryContext(ctx, query, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return cohortapi.ListPage{}, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	results := []cohortapi.ListSummary{}
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return cohortapi.ListPage{}, err
		}
		results = append(results, summary)
	}
	if err := rows.Err(); err != nil {
		return cohortapi.ListPage{}, fmt.Errorf("iterate lists: %w", err)
	}
	return cohortapi.ListPage{Results: results, TotalCount: total}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (cohortapi.ListSummary, error) {
	var (
		s         cohortapi.ListSummary
		kind      string
		starred   int
		createdAt int64
	)
	if err := row.Scan(&s.ID, &s.Display, &s.Description, &kind, &starred, &createdAt, &s.Size); err != nil {
		return cohortapi.ListSummary{}, fmt.Errorf("scan list: %w", err)
	}
	s.Kind = cohortapi.ListKind(kind)
	s.IsStarred = starred != 0
	s.CreatedAt = time.UnixMilli(createdAt).UTC().Format(time.RFC3339Nano)
	return s, nil
}

// Get returns the list with the given id.
func (c *Catalog) Get(ctx context.Context, id string) (cohortapi.ListSummary, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT l.id, l.name, l.description, l.kind, l.starred, l.created_at,
		       (SELECT COUNT(*) FROM list_members m WHERE m.list_id = l.id)
		FROM lists l WHERE l.id = ?`, id)
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cohortapi.ListSummary{}, ErrNotFound
	}
	return s, err
}

// Create stores a new list. Kind defaults to user.
func (c *Catalog) Create(ctx context.Context, in cohortapi.NewList) (cohortapi.ListSummary, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return cohortapi.ListSummary{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	kind := in.Kind
	if kind == "" {
		kind = cohortapi.KindUser
	}
	if cohortapi.ParseListKind(string(kind)) == "" {
		return cohortapi.ListSummary{}, fmt.Errorf("%w: unknown kind %q", ErrInvalid, in.Kind)
	}

	id := uuid.NewString()
	created := c.now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO lists (id, name, description, kind, starred, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		id, name, strings.TrimSpace(in.Description), string(kind), created.UnixMilli())
	if err != nil {
		return cohortapi.ListSummary{}, fmt.Errorf("insert list: %w", err)
	}
	return cohortapi.ListSummary{
		ID:          id,
		Display:     name,
		Description: strings.TrimSpace(in.Description),
		Kind:        kind,
		CreatedAt:   time.UnixMilli(created.UnixMilli()).UTC().Format(time.RFC3339Nano),
	}, nil
}

// SetStarred stars or unstars a list.
func (c *Catalog) SetStarred(ctx context.Context, id string, starred bool) error {
	flag := 0
	if starred {
		flag = 1
	}
	res, err := c.db.ExecContext(ctx, `UPDATE lists SET starred = ? WHERE id = ?`, flag, id)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMembers adds patients to a list. Patients already on it are skipped.
func (c *Catalog) AddMembers(ctx context.Context, id string, patientIDs ...string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("lookup list: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO list_members (list_id, patient_id, added_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := c.now().UnixMilli()
	for _, pid := range patientIDs {
		if _, err := stmt.ExecContext(ctx, id, pid, now); err != nil {
			return fmt.Errorf("add member: %w", err)
		}
	}
	return tx.Commit()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
