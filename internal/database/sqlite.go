package database

import (
	"context"
	"database/sql"
	"fmt"

	"introboard/internal/intro"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS introductions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT '',
	responsibilities TEXT NOT NULL DEFAULT '',
	previous_company TEXT NOT NULL DEFAULT '',
	mbti TEXT NOT NULL DEFAULT '',
	hobbies TEXT NOT NULL DEFAULT '',
	tmi TEXT NOT NULL DEFAULT '',
	greetings TEXT NOT NULL DEFAULT '',
	submitted_at TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps introduction rows in a local SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. ":memory:" works
// for throwaway stores.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, rec intro.Record) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO introductions (name, department, responsibilities, previous_company, mbti, hobbies, tmi, greetings, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Name, rec.Department, rec.Responsibilities, rec.PreviousCompany, rec.MBTI, rec.Hobbies, rec.TMI, rec.Greetings, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert introduction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]intro.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT name, department, responsibilities, previous_company, mbti, hobbies, tmi, greetings, submitted_at
		FROM introductions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query introductions: %w", err)
	}
	defer rows.Close()

	records := []intro.Record{}
	for rows.Next() {
		var rec intro.Record
		if err := rows.Scan(&rec.Name, &rec.Department, &rec.Responsibilities, &rec.PreviousCompany,
			&rec.MBTI, &rec.Hobbies, &rec.TMI, &rec.Greetings, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan introduction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
