package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Sobaasvini/online-quiz-application/internal/app"
	"github.com/Sobaasvini/online-quiz-application/internal/domain"
)

// CachingQuizRepository decorates a quiz repository with a TTL read cache,
// keeping session starts off the backing store. Writes pass through and
// invalidate the cached entry so authoring reads stay fresh.
type CachingQuizRepository struct {
	delegate app.QuizRepository
	ttl      time.Duration
	clock    func() time.Time
	sf       singleflight.Group
	rnd      *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewCachingQuizRepository(delegate app.QuizRepository, ttl time.Duration) *CachingQuizRepository {
	return &CachingQuizRepository{
		delegate: delegate,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:    make(map[string]cachedQuiz),
	}
}

func (r *CachingQuizRepository) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.quiz.Clone(), nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[quizID]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.quiz, nil
		}
		r.mu.RUnlock()

		quiz, err := r.delegate.Get(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		r.mu.Lock()
		r.cache[quizID] = cachedQuiz{quiz: quiz, expiresAt: now.Add(r.ttlWithJitter())}
		r.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz).Clone(), nil
}

func (r *CachingQuizRepository) Insert(ctx context.Context, quiz domain.Quiz) error {
	return r.delegate.Insert(ctx, quiz)
}

// List is a pass-through; summaries are cheap and must reflect deletions.
func (r *CachingQuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	return r.delegate.List(ctx)
}

func (r *CachingQuizRepository) AppendQuestion(ctx context.Context, quizID string, question domain.Question) error {
	if err := r.delegate.AppendQuestion(ctx, quizID, question); err != nil {
		return err
	}
	r.invalidate(quizID)
	return nil
}

func (r *CachingQuizRepository) ReplaceQuestion(ctx context.Context, quizID string, index int, question domain.Question) error {
	if err := r.delegate.ReplaceQuestion(ctx, quizID, index, question); err != nil {
		return err
	}
	r.invalidate(quizID)
	return nil
}

func (r *CachingQuizRepository) Delete(ctx context.Context, quizID string) error {
	if err := r.delegate.Delete(ctx, quizID); err != nil {
		return err
	}
	r.invalidate(quizID)
	return nil
}

func (r *CachingQuizRepository) invalidate(quizID string) {
	r.mu.Lock()
	delete(r.cache, quizID)
	r.mu.Unlock()
}

func (r *CachingQuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
