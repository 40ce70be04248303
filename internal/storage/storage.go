package storage

import (
	"crypto/rand"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Session is the summary of one generation run. Passwords are never stored.
type Session struct {
	ID         string
	StartedAt  time.Time
	Dictionary string
	Requested  int
	Generated  int
	Cancelled  bool
	AvgScore   float64
	Duration   time.Duration
}

type DailyStats struct {
	Date      string
	Sessions  int64
	Passwords int64
}

// New opens (or creates) jexi.db in dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "jexi.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		date TEXT NOT NULL,
		dictionary TEXT NOT NULL,
		requested INTEGER NOT NULL,
		generated INTEGER NOT NULL,
		cancelled INTEGER NOT NULL DEFAULT 0,
		avg_score REAL NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);

	CREATE TABLE IF NOT EXISTS daily_summary (
		date TEXT PRIMARY KEY,
		sessions INTEGER DEFAULT 0,
		passwords INTEGER DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordSession stores s and bumps the daily summary. An empty ID is
// replaced by a new ULID, a zero StartedAt by the current time.
func (s *Store) RecordSession(sess *Session) error {
	if sess.StartedAt.IsZero() {
		sess.StartedAt = s.now()
	}
	if sess.ID == "" {
		id, err := ulid.New(ulid.Timestamp(sess.StartedAt), ulid.Monotonic(rand.Reader, 0))
		if err != nil {
			return err
		}
		sess.ID = id.String()
	}
	date := sess.StartedAt.Local().Format("2006-01-02")

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, started_at, date, dictionary, requested, generated, cancelled, avg_score, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.StartedAt.UTC(), date, sess.Dictionary, sess.Requested, sess.Generated,
		sess.Cancelled, sess.AvgScore, sess.Duration.Milliseconds(),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO daily_summary (date, sessions, passwords) VALUES (?, 1, ?)
		ON CONFLICT(date) DO UPDATE SET
			sessions = sessions + 1,
			passwords = passwords + excluded.passwords,
			updated_at = CURRENT_TIMESTAMP
	`, date, sess.Generated)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetTodayStats() (*DailyStats, error) {
	date := s.now().Format("2006-01-02")
	return s.GetDayStats(date)
}

func (s *Store) GetDayStats(date string) (*DailyStats, error) {
	var stats DailyStats
	stats.Date = date

	err := s.db.QueryRow(
		"SELECT COALESCE(sessions, 0), COALESCE(passwords, 0) FROM daily_summary WHERE date = ?",
		date,
	).Scan(&stats.Sessions, &stats.Passwords)

	if err == sql.ErrNoRows {
		return &DailyStats{Date: date}, nil
	}
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Store) GetWeekStats() ([]DailyStats, error) {
	return s.GetHistoricalStats(7)
}

// GetHistoricalStats returns stats for the last N days, oldest first
func (s *Store) GetHistoricalStats(days int) ([]DailyStats, error) {
	now := s.now()
	stats := make([]DailyStats, days)

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		dayStat, err := s.GetDayStats(date)
		if err != nil {
			return nil, err
		}
		stats[days-1-i] = *dayStat
	}

	return stats, nil
}

// GetRecentSessions returns up to limit sessions, newest first
func (s *Store) GetRecentSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, dictionary, requested, generated, cancelled, avg_score, duration_ms
		FROM sessions ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var durationMs int64
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.Dictionary, &sess.Requested,
			&sess.Generated, &sess.Cancelled, &sess.AvgScore, &durationMs); err != nil {
			return nil, err
		}
		sess.Duration = time.Duration(durationMs) * time.Millisecond
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
