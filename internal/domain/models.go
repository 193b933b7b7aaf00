package domain

import "time"

// Role identifies which operation set a caller is permitted to use.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Credential is a stored login record. Secret holds the verifier's encoding
// of the password (a bcrypt hash in the default wiring), never plaintext.
type Credential struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
	Role     Role   `json:"role"`
}

// Question models a multi-select question: a prompt, an ordered option list,
// and the set of option indices that must all be picked for a correct answer.
type Question struct {
	Prompt         string   `json:"prompt"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
}

// Clone returns a deep copy so callers can never mutate stored state.
func (q Question) Clone() Question {
	out := Question{Prompt: q.Prompt}
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.CorrectAnswers != nil {
		out.CorrectAnswers = append([]int(nil), q.CorrectAnswers...)
	}
	return out
}

// Quiz is a named, ordered collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Clone returns a deep copy of the quiz and all its questions.
func (q Quiz) Clone() Quiz {
	out := Quiz{ID: q.ID, Title: q.Title}
	if q.Questions != nil {
		out.Questions = make([]Question, len(q.Questions))
		for i, question := range q.Questions {
			out.Questions[i] = question.Clone()
		}
	}
	return out
}

// QuizSummary is the listing view of a quiz.
type QuizSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// QuestionFeedback is returned for every answer submission, right or wrong.
type QuestionFeedback struct {
	Correct        bool  `json:"correct"`
	CorrectAnswers []int `json:"correctAnswers"`
}

// QuizResult summarizes a completed session.
type QuizResult struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// QuizAttempt is an immutable record of one completed quiz session.
// QuizTitle is a denormalized copy: deleting the quiz from the catalog
// leaves historical attempts intact.
type QuizAttempt struct {
	Username       string    `json:"username"`
	QuizTitle      string    `json:"quizTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Timestamp      time.Time `json:"timestamp"`
}
