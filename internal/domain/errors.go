package domain

import "errors"

var (
	// ErrDuplicateUsername is returned when a registration reuses a username
	// already present in either role set.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned when login fails; callers cannot
	// distinguish an unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrQuizNotFound indicates the referenced quiz is not in the catalog.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a question index outside the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidQuestion is returned when a question has fewer than two
	// options or a correct-answer index outside its option list.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrSessionNotFound is returned when a session ID is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizCompleted is returned when an answer is submitted to a session
	// that has already finished.
	ErrQuizCompleted = errors.New("quiz already completed")
	// ErrQuizNotCompleted is returned when the result is requested before
	// every question has been answered.
	ErrQuizNotCompleted = errors.New("quiz not completed yet")
)
