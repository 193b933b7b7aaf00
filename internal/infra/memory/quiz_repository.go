package memory

import (
	"context"
	"sync"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// QuizRepository is the in-memory implementation of app.QuizRepository.
// All mutations share one lock so question-level edits are atomic, and all
// reads hand out deep copies.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
	order   []string
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{quizzes: make(map[string]domain.Quiz)}
}

func (r *QuizRepository) Insert(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = quiz.Clone()
	r.order = append(r.order, quiz.ID)
	return nil
}

func (r *QuizRepository) Get(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz.Clone(), nil
}

// List returns quizzes in insertion order.
func (r *QuizRepository) List(_ context.Context) ([]domain.QuizSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summaries := make([]domain.QuizSummary, 0, len(r.order))
	for _, id := range r.order {
		quiz, ok := r.quizzes[id]
		if !ok {
			continue
		}
		summaries = append(summaries, domain.QuizSummary{ID: quiz.ID, Title: quiz.Title})
	}
	return summaries, nil
}

func (r *QuizRepository) AppendQuestion(_ context.Context, quizID string, question domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	quiz.Questions = append(quiz.Questions, question.Clone())
	r.quizzes[quizID] = quiz
	return nil
}

func (r *QuizRepository) ReplaceQuestion(_ context.Context, quizID string, index int, question domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	if index < 0 || index >= len(quiz.Questions) {
		return domain.ErrQuestionNotFound
	}
	quiz.Questions[index] = question.Clone()
	r.quizzes[quizID] = quiz
	return nil
}

func (r *QuizRepository) Delete(_ context.Context, quizID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(r.quizzes, quizID)
	for i, id := range r.order {
		if id == quizID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
