package memory

import (
	"context"
	"testing"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

func sampleQuiz(id string) domain.Quiz {
	return domain.Quiz{
		ID:    id,
		Title: "Sample",
		Questions: []domain.Question{
			{Prompt: "q1", Options: []string{"a", "b"}, CorrectAnswers: []int{0}},
			{Prompt: "q2", Options: []string{"a", "b", "c"}, CorrectAnswers: []int{1, 2}},
		},
	}
}

func TestQuizRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepository()

	if err := repo.Insert(ctx, sampleQuiz("quiz-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	quiz, err := repo.Get(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}

	if err := repo.AppendQuestion(ctx, "quiz-1", domain.Question{
		Prompt: "q3", Options: []string{"x", "y"}, CorrectAnswers: []int{1}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.ReplaceQuestion(ctx, "quiz-1", 0, domain.Question{
		Prompt: "q1 edited", Options: []string{"a", "b"}, CorrectAnswers: []int{1}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	quiz, _ = repo.Get(ctx, "quiz-1")
	if len(quiz.Questions) != 3 || quiz.Questions[0].Prompt != "q1 edited" {
		t.Fatalf("unexpected state after edits: %+v", quiz.Questions)
	}

	if err := repo.Delete(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "quiz-1"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestQuizRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepository()

	if err := repo.AppendQuestion(ctx, "missing", domain.Question{Prompt: "q"}); err != domain.ErrQuizNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.ReplaceQuestion(ctx, "missing", 0, domain.Question{Prompt: "q"}); err != domain.ErrQuizNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_ = repo.Insert(ctx, sampleQuiz("quiz-1"))
	if err := repo.ReplaceQuestion(ctx, "quiz-1", 9, domain.Question{Prompt: "q"}); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestQuizRepositoryListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepository()

	_ = repo.Insert(ctx, domain.Quiz{ID: "a", Title: "A"})
	_ = repo.Insert(ctx, domain.Quiz{ID: "b", Title: "B"})
	_ = repo.Insert(ctx, domain.Quiz{ID: "c", Title: "C"})
	_ = repo.Delete(ctx, "b")

	summaries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 || summaries[0].ID != "a" || summaries[1].ID != "c" {
		t.Fatalf("expected [a, c], got %+v", summaries)
	}
}

func TestQuizRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepository()
	_ = repo.Insert(ctx, sampleQuiz("quiz-1"))

	quiz, _ := repo.Get(ctx, "quiz-1")
	quiz.Questions[0].Options[0] = "mutated"

	fresh, _ := repo.Get(ctx, "quiz-1")
	if fresh.Questions[0].Options[0] != "a" {
		t.Fatalf("mutation leaked into the repository")
	}
}
