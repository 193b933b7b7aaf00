package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// AttemptLedger persists completed attempts. The serial primary key gives
// a stable insertion order per user.
type AttemptLedger struct {
	pool *pgxpool.Pool
}

func NewAttemptLedger(pool *pgxpool.Pool) *AttemptLedger {
	return &AttemptLedger{pool: pool}
}

func (l *AttemptLedger) Record(ctx context.Context, attempt domain.QuizAttempt) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO quiz_attempts (username, quiz_title, score, total_questions, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		attempt.Username, attempt.QuizTitle, attempt.Score, attempt.TotalQuestions, attempt.Timestamp)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (l *AttemptLedger) History(ctx context.Context, username string) ([]domain.QuizAttempt, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT username, quiz_title, score, total_questions, created_at
		 FROM quiz_attempts WHERE username=$1 ORDER BY id`, username)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0)
	for rows.Next() {
		var attempt domain.QuizAttempt
		if err := rows.Scan(&attempt.Username, &attempt.QuizTitle, &attempt.Score,
			&attempt.TotalQuestions, &attempt.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return attempts, nil
}
