package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// QuizRepository stores each quiz as a JSONB document. Question-level edits
// run in a transaction with a row lock so concurrent authors cannot clobber
// each other's changes.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

func (r *QuizRepository) Insert(ctx context.Context, quiz domain.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO quizzes (id, title, data) VALUES ($1, $2, $3)`,
		quiz.ID, quiz.Title, raw)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title FROM quizzes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var summaries []domain.QuizSummary
	for rows.Next() {
		var summary domain.QuizSummary
		if err := rows.Scan(&summary.ID, &summary.Title); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return summaries, nil
}

func (r *QuizRepository) AppendQuestion(ctx context.Context, quizID string, question domain.Question) error {
	return r.mutateQuiz(ctx, quizID, func(quiz *domain.Quiz) error {
		quiz.Questions = append(quiz.Questions, question)
		return nil
	})
}

func (r *QuizRepository) ReplaceQuestion(ctx context.Context, quizID string, index int, question domain.Question) error {
	return r.mutateQuiz(ctx, quizID, func(quiz *domain.Quiz) error {
		if index < 0 || index >= len(quiz.Questions) {
			return domain.ErrQuestionNotFound
		}
		quiz.Questions[index] = question
		return nil
	})
}

func (r *QuizRepository) Delete(ctx context.Context, quizID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id=$1`, quizID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

// mutateQuiz applies a read-modify-write under a row lock.
func (r *QuizRepository) mutateQuiz(ctx context.Context, quizID string, mutate func(*domain.Quiz) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1 FOR UPDATE`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuizNotFound
	}
	if err != nil {
		return fmt.Errorf("load quiz: %w", err)
	}

	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return fmt.Errorf("unmarshal quiz: %w", err)
	}
	if err := mutate(&quiz); err != nil {
		return err
	}

	updated, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE quizzes SET data=$2 WHERE id=$1`, quizID, updated); err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return tx.Commit(ctx)
}
