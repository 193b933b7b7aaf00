package app_test

import (
	"testing"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
)

func TestAnswersMatchExactSet(t *testing.T) {
	correct := []int{1, 3}

	if !app.AnswersMatch([]int{1, 3}, correct) {
		t.Fatalf("expected exact selection to match")
	}
	if !app.AnswersMatch([]int{3, 1}, correct) {
		t.Fatalf("expected order not to matter")
	}
	if app.AnswersMatch([]int{1}, correct) {
		t.Fatalf("subset must not match")
	}
	if app.AnswersMatch([]int{1, 2, 3}, correct) {
		t.Fatalf("superset must not match")
	}
	if app.AnswersMatch(nil, correct) {
		t.Fatalf("empty selection must not match")
	}
}

func TestAnswersMatchIgnoresDuplicates(t *testing.T) {
	if !app.AnswersMatch([]int{1, 1, 3}, []int{1, 3}) {
		t.Fatalf("duplicate selections should collapse to the same set")
	}
}

func TestAnswersMatchEmptyCorrectSet(t *testing.T) {
	// A question with no correct options is only answered by selecting nothing.
	if !app.AnswersMatch(nil, nil) {
		t.Fatalf("empty vs empty should match")
	}
	if app.AnswersMatch([]int{0}, nil) {
		t.Fatalf("any selection against an empty correct set must fail")
	}
}

func TestPercentage(t *testing.T) {
	if got := app.Percentage(2, 4); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := app.Percentage(0, 0); got != 0 {
		t.Fatalf("zero total must yield 0, got %v", got)
	}
	if got := app.Percentage(3, 3); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}
