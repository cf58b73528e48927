// Package store persists scraped portal artifacts, login credentials
// and preferences in sqlite, and owns the freshness policy that decides
// when a cached artifact may be reused instead of hitting the portal.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindAttendance Kind = "attendance"
	KindCalendar   Kind = "calendar"
	KindCourse     Kind = "course"
	KindTimetable  Kind = "timetable"
	// the student-info and marks snapshots scraped off the
	// attendance page
	KindStudentInfo Kind = "table2"
	KindMarks       Kind = "table3"
)

// attendance changes intraday and user refreshes are rate-limited to
// discourage hammering the portal; everything else turns over daily
const attendanceWindow = 200 * time.Second

const dayStampFormat = "2006-01-02"

type Store struct {
	db *sql.DB
}

func New(database *sql.DB) Store {
	return Store{db: database}
}

// Open connects to the artifact database. A libsql:// url goes through
// the libsql driver; anything else is treated as a local sqlite path.
func Open(dsn string) (*sql.DB, error) {
	var database *sql.DB
	var err error
	if strings.HasPrefix(dsn, "libsql://") {
		database, err = sql.Open("libsql", dsn)
	} else {
		database, err = sql.Open("sqlite", dsn)
		if err == nil {
			// see https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
			database.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return database, nil
}

type Artifact struct {
	Kind        Kind
	Payload     string
	FetchedDay  string
	FetchedAtMs int64
}

// PutArtifact writes a payload together with both freshness markers in
// one statement, a reader can never pair a payload with a marker from
// a different fetch.
func (s Store) PutArtifact(ctx context.Context, kind Kind, payload string, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (kind, payload, fetched_day, fetched_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind) DO UPDATE SET
			payload = excluded.payload,
			fetched_day = excluded.fetched_day,
			fetched_at_ms = excluded.fetched_at_ms
	`, string(kind), payload, now.Format(dayStampFormat), now.UnixMilli())
	return err
}

// GetArtifact returns the cached artifact if one exists.
func (s Store) GetArtifact(ctx context.Context, kind Kind) (Artifact, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_day, fetched_at_ms FROM artifacts WHERE kind = ?
	`, string(kind))

	artifact := Artifact{Kind: kind}
	err := row.Scan(&artifact.Payload, &artifact.FetchedDay, &artifact.FetchedAtMs)
	if err == sql.ErrNoRows {
		return Artifact{}, false, nil
	}
	if err != nil {
		return Artifact{}, false, err
	}
	return artifact, true, nil
}

// IsFresh reports whether a cached artifact may be reused right now.
func (s Store) IsFresh(artifact Artifact, now time.Time) bool {
	if artifact.Kind == KindAttendance {
		age := now.UnixMilli() - artifact.FetchedAtMs
		return age >= 0 && age <= attendanceWindow.Milliseconds()
	}
	return artifact.FetchedDay == now.Format(dayStampFormat)
}

// GetFreshArtifact returns the artifact only when it passes the
// freshness policy.
func (s Store) GetFreshArtifact(ctx context.Context, kind Kind, now time.Time) (Artifact, bool, error) {
	artifact, ok, err := s.GetArtifact(ctx, kind)
	if err != nil || !ok {
		return Artifact{}, false, err
	}
	if !s.IsFresh(artifact, now) {
		return Artifact{}, false, nil
	}
	return artifact, true, nil
}

func (s Store) InvalidateArtifact(ctx context.Context, kind Kind) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE kind = ?`, string(kind))
	return err
}

func (s Store) ClearArtifacts(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM artifacts`)
	return err
}

type Credentials struct {
	Identifier string
	Digest     string
	Cookies    string
	SavedAtMs  int64
}

func (s Store) PutCredentials(ctx context.Context, creds Credentials, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, identifier, digest, cookies, saved_at_ms)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			identifier = excluded.identifier,
			digest = excluded.digest,
			cookies = excluded.cookies,
			saved_at_ms = excluded.saved_at_ms
	`, creds.Identifier, creds.Digest, creds.Cookies, now.UnixMilli())
	return err
}

func (s Store) GetCredentials(ctx context.Context) (Credentials, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT identifier, digest, cookies, saved_at_ms FROM credentials WHERE id = 1
	`)

	var creds Credentials
	err := row.Scan(&creds.Identifier, &creds.Digest, &creds.Cookies, &creds.SavedAtMs)
	if err == sql.ErrNoRows {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}
	return creds, true, nil
}

func (s Store) DeleteCredentials(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	return err
}

const targetPercentPreference = "attendance_target_percent"

// DefaultTargetPercent mirrors the university's exam eligibility bar.
const DefaultTargetPercent = 75

// TargetPercent returns the configured attendance target, defaulting
// when unset and clamping stored values into [1,100].
func (s Store) TargetPercent(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE name = ?
	`, targetPercentPreference)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return DefaultTargetPercent, nil
	}
	if err != nil {
		return 0, err
	}
	target, err := strconv.Atoi(value)
	if err != nil {
		return DefaultTargetPercent, nil
	}
	return clampTarget(target), nil
}

func (s Store) SetTargetPercent(ctx context.Context, target int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value
	`, targetPercentPreference, strconv.Itoa(clampTarget(target)))
	return err
}

func clampTarget(target int) int {
	if target < 1 {
		return 1
	}
	if target > 100 {
		return 100
	}
	return target
}
