package app

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// QuizRepository stores the quiz collection. Question-level mutations are
// single repository calls so each implementation can make them atomic within
// its own lock domain.
type QuizRepository interface {
	Insert(ctx context.Context, quiz domain.Quiz) error
	Get(ctx context.Context, quizID string) (domain.Quiz, error)
	List(ctx context.Context) ([]domain.QuizSummary, error)
	AppendQuestion(ctx context.Context, quizID string, question domain.Question) error
	ReplaceQuestion(ctx context.Context, quizID string, index int, question domain.Question) error
	Delete(ctx context.Context, quizID string) error
}

// CatalogService owns quiz authoring. Role checks belong to the transport;
// the catalog itself only validates content.
type CatalogService struct {
	repo QuizRepository
}

func NewCatalogService(repo QuizRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// CreateQuiz allocates an empty quiz and returns its listing view.
func (c *CatalogService) CreateQuiz(ctx context.Context, title string) (domain.QuizSummary, error) {
	quiz := domain.Quiz{ID: uuid.NewString(), Title: title}
	if err := c.repo.Insert(ctx, quiz); err != nil {
		return domain.QuizSummary{}, err
	}
	return domain.QuizSummary{ID: quiz.ID, Title: quiz.Title}, nil
}

// AddQuestion appends a question to the end of the quiz. A question with an
// empty prompt is an abandoned draft and is dropped without error, matching
// the authoring flow this service replaces.
func (c *CatalogService) AddQuestion(ctx context.Context, quizID string, question domain.Question) error {
	if question.Prompt == "" {
		return nil
	}
	normalized, err := normalizeQuestion(question)
	if err != nil {
		return err
	}
	return c.repo.AppendQuestion(ctx, quizID, normalized)
}

// ListQuizzes returns the catalog in insertion order.
func (c *CatalogService) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	return c.repo.List(ctx)
}

// GetQuiz returns a snapshot of the quiz; mutating it does not touch the
// catalog.
func (c *CatalogService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return c.repo.Get(ctx, quizID)
}

// UpdateQuestion replaces the prompt, options, and correct answers of the
// question at index, keeping its position.
func (c *CatalogService) UpdateQuestion(ctx context.Context, quizID string, index int, prompt string, options []string, correctAnswers []int) error {
	normalized, err := normalizeQuestion(domain.Question{
		Prompt:         prompt,
		Options:        options,
		CorrectAnswers: correctAnswers,
	})
	if err != nil {
		return err
	}
	return c.repo.ReplaceQuestion(ctx, quizID, index, normalized)
}

// DeleteQuiz removes the quiz and its questions. Historical attempts keep
// their denormalized title and are not touched.
func (c *CatalogService) DeleteQuiz(ctx context.Context, quizID string) error {
	return c.repo.Delete(ctx, quizID)
}

// normalizeQuestion validates option count and correct-answer indices, and
// canonicalizes the correct set (sorted, deduplicated).
func normalizeQuestion(q domain.Question) (domain.Question, error) {
	if len(q.Options) < 2 {
		return domain.Question{}, domain.ErrInvalidQuestion
	}
	seen := make(map[int]struct{}, len(q.CorrectAnswers))
	correct := make([]int, 0, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			return domain.Question{}, domain.ErrInvalidQuestion
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		correct = append(correct, idx)
	}
	sort.Ints(correct)
	return domain.Question{
		Prompt:         q.Prompt,
		Options:        append([]string(nil), q.Options...),
		CorrectAnswers: correct,
	}, nil
}
