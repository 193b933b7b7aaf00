package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// AttemptLedger stores each user's attempts as a Redis list of JSON
// documents. RPUSH preserves insertion order, which is the display order.
type AttemptLedger struct {
	client *redis.Client
}

func NewAttemptLedger(client *redis.Client) *AttemptLedger {
	return &AttemptLedger{client: client}
}

func (l *AttemptLedger) Record(ctx context.Context, attempt domain.QuizAttempt) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := l.client.RPush(ctx, l.key(attempt.Username), raw).Err(); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (l *AttemptLedger) History(ctx context.Context, username string) ([]domain.QuizAttempt, error) {
	rows, err := l.client.LRange(ctx, l.key(username), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	attempts := make([]domain.QuizAttempt, 0, len(rows))
	for _, row := range rows {
		var attempt domain.QuizAttempt
		if err := json.Unmarshal([]byte(row), &attempt); err != nil {
			return nil, fmt.Errorf("unmarshal attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

func (l *AttemptLedger) key(username string) string {
	return "quiz:attempts:" + username
}
