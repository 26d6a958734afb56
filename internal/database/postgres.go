package database

import (
	"context"
	"fmt"

	"introboard/internal/intro"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps introduction rows in the introductions table.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, rec intro.Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO introductions (name, department, responsibilities, previous_company, mbti, hobbies, tmi, greetings, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.Name, rec.Department, rec.Responsibilities, rec.PreviousCompany, rec.MBTI, rec.Hobbies, rec.TMI, rec.Greetings, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert introduction: %w", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]intro.Record, error) {
	rows, err := s.db.Query(ctx, `
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read introductions: %w", err)
	}
	return records, nil
}
