// Package sqlite provides a SQLite implementation of the MemberRegistry interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.MemberRegistry using SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// An in-memory database exists per connection.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Members keyed by their derived identifier
	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		province TEXT NOT NULL,
		party TEXT NOT NULL,
		language TEXT NOT NULL,
		gender TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		wiki TEXT,
		photo_url TEXT,
		alternative_names TEXT,
		updated_at TEXT NOT NULL
	);

	-- Periods during which a member substituted for another
	CREATE TABLE IF NOT EXISTS replacements (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		member_id TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		replaced_member_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		UNIQUE(member_id, replaced_member_id, start_date)
	);
	CREATE INDEX IF NOT EXISTS idx_replacements_member ON replacements(member_id);

	-- Activity records (seq keeps insertion order)
	CREATE TABLE IF NOT EXISTS activities (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		member_id TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		occurred_at TEXT NOT NULL,
		summary TEXT,
		resource TEXT,
		attributes TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_activities_member ON activities(member_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveMember saves or updates a member.
func (r *Repository) SaveMember(ctx context.Context, member *entities.Member) error {
	altNames, err := marshalJSON(member.AlternativeNames, len(member.AlternativeNames))
	if err != nil {
		return fmt.Errorf("encoding alternative names: %w", err)
	}

	query := `
		INSERT INTO members (id, first_name, last_name, province, party, language, gender,
			date_of_birth, wiki, photo_url, alternative_names, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			province = excluded.province,
			party = excluded.party,
			language = excluded.language,
			gender = excluded.gender,
			date_of_birth = excluded.date_of_birth,
			wiki = excluded.wiki,
			photo_url = excluded.photo_url,
			alternative_names = excluded.alternative_names,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		member.ID(),
		member.FirstName,
		member.LastName,
		member.Province,
		member.Party,
		member.Language,
		member.Gender,
		formatTime(member.DateOfBirth),
		nullString(member.Wiki),
		nullString(member.PhotoURL),
		altNames,
		formatTime(timeNow()),
	)
	if err != nil {
		return fmt.Errorf("saving member: %w", err)
	}
	return nil
}

// FindMember finds a member by ID.
func (r *Repository) FindMember(ctx context.Context, id string) (*entities.Member, error) {
	query := `
		SELECT first_name, last_name, province, party, language, gender,
			date_of_birth, wiki, photo_url, alternative_names
		FROM members
		WHERE id = ?
	`
	member, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers lists members ordered by ID.
func (r *Repository) ListMembers(ctx context.Context, limit, offset int) ([]*entities.Member, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT first_name, last_name, province, party, language, gender,
			date_of_birth, wiki, photo_url, alternative_names
		FROM members
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	var result []*entities.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

// CountMembers returns the total number of members.
func (r *Repository) CountMembers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting members: %w", err)
	}
	return count, nil
}

// SaveReplacement records that memberID replaced rep.MemberRef. Saving the
// same period twice updates its end date.
func (r *Repository) SaveReplacement(ctx context.Context, memberID string, rep entities.Replacement) error {
	var end any
	if rep.Dates.End != nil {
		end = formatTime(*rep.Dates.End)
	}

	query := `
		INSERT INTO replacements (member_id, replaced_member_id, start_date, end_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(member_id, replaced_member_id, start_date) DO UPDATE SET
			end_date = excluded.end_date
	`
	_, err := r.db.ExecContext(ctx, query, memberID, rep.MemberRef, formatTime(rep.Dates.Start), end)
	if err != nil {
		return fmt.Errorf("saving replacement: %w", err)
	}
	return nil
}

// FindReplacements returns the replacement history of a member.
func (r *Repository) FindReplacements(ctx context.Context, memberID string) ([]entities.Replacement, error) {
	query := `
		SELECT replaced_member_id, start_date, end_date
		FROM replacements
		WHERE member_id = ?
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("querying replacements: %w", err)
	}
	defer rows.Close()

	var result []entities.Replacement
	for rows.Next() {
		var (
			rep   entities.Replacement
			start string
			end   sql.NullString
		)
		if err := rows.Scan(&rep.MemberRef, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning replacement: %w", err)
		}
		if rep.Dates.Start, err = parseTime(start); err != nil {
			return nil, err
		}
		if end.Valid {
			t, err := parseTime(end.String)
			if err != nil {
				return nil, err
			}
			rep.Dates.End = &t
		}
		result = append(result, rep)
	}
	return result, rows.Err()
}

// SaveActivity saves or updates an activity record. Records without an ID
// are assigned a new one.
func (r *Repository) SaveActivity(ctx context.Context, record *entities.Record) error {
	if record.ID == "" {
		record.ID = generateUUID()
	}

	attributes, err := marshalJSON(record.Attributes, len(record.Attributes))
	if err != nil {
		return fmt.Errorf("encoding attributes: %w", err)
	}

	query := `
		INSERT INTO activities (id, member_id, kind, occurred_at, summary, resource, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			member_id = excluded.member_id,
			kind = excluded.kind,
			occurred_at = excluded.occurred_at,
			summary = excluded.summary,
			resource = excluded.resource,
			attributes = excluded.attributes
	`
	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.MemberID,
		record.Kind,
		formatTime(record.OccurredAt),
		nullString(record.Summary),
		nullString(record.Resource),
		attributes,
	)
	if err != nil {
		return fmt.Errorf("saving activity: %w", err)
	}
	return nil
}

// FindActivities returns the activity records of a member in insertion order.
func (r *Repository) FindActivities(ctx context.Context, memberID string) ([]*entities.Record, error) {
	query := `
		SELECT id, member_id, kind, occurred_at, summary, resource, attributes
		FROM activities
		WHERE member_id = ?
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var result []*entities.Record
	for rows.Next() {
		var (
			rec                           entities.Record
			occurred                      string
			summary, resource, attributes sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.MemberID, &rec.Kind, &occurred, &summary, &resource, &attributes); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if rec.OccurredAt, err = parseTime(occurred); err != nil {
			return nil, err
		}
		rec.Summary = summary.String
		rec.Resource = resource.String
		if attributes.Valid {
			if err := json.Unmarshal([]byte(attributes.String), &rec.Attributes); err != nil {
				return nil, fmt.Errorf("decoding attributes: %w", err)
			}
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*entities.Member, error) {
	var (
		info                     entities.MemberInfo
		dob                      string
		wiki, photo, altNamesRaw sql.NullString
	)
	err := row.Scan(
		&info.FirstName,
		&info.LastName,
		&info.Province,
		&info.Party,
		&info.Language,
		&info.Gender,
		&dob,
		&wiki,
		&photo,
		&altNamesRaw,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning member: %w", err)
	}

	if info.DateOfBirth, err = parseTime(dob); err != nil {
		return nil, err
	}
	info.Wiki = wiki.String
	info.PhotoURL = photo.String
	if altNamesRaw.Valid {
		if err := json.Unmarshal([]byte(altNamesRaw.String), &info.AlternativeNames); err != nil {
			return nil, fmt.Errorf("decoding alternative names: %w", err)
		}
	}

	return entities.NewMember(info), nil
}

// formatTime stores times as RFC 3339 text so the zone offset survives.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

// marshalJSON encodes a collection of size n, storing NULL when it is empty.
func marshalJSON(v any, n int) (any, error) {
	if n == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
