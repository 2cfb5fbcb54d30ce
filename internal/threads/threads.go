// Package threads assembles question threads: a question, its answers
// in presentation order, and optionally the comments on each post.
package threads

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/overflowhq/stackoverflow-mcp/internal/cache"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Assembler fetches and caches question threads.
type Assembler struct {
	client  *stackexchange.Client
	cache   *cache.ThreadCache
	workers int
}

// New creates an assembler. workers bounds concurrent upstream calls
// during assembly; values below 1 are treated as 1.
func New(client *stackexchange.Client, tc *cache.ThreadCache, workers int) *Assembler {
	if workers < 1 {
		workers = 1
	}
	return &Assembler{client: client, cache: tc, workers: workers}
}

// Fetch returns the thread for a question id, checking the cache
// first. Returns (nil, nil) when the question does not exist.
func (a *Assembler) Fetch(ctx context.Context, questionID int64, withComments bool) (*stackexchange.Thread, error) {
	if cached, ok := a.cache.Get(questionID, withComments); ok {
		return cached, nil
	}

	question, err := a.client.Question(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, nil
	}

	thread, err := a.build(ctx, *question, withComments)
	if err != nil {
		return nil, err
	}
	a.cache.Put(questionID, withComments, thread)
	return thread, nil
}

// FromQuestions assembles threads for already-fetched questions, such
// as a page of search results. Input order is preserved.
func (a *Assembler) FromQuestions(ctx context.Context, questions []stackexchange.Question, withComments bool) ([]stackexchange.Thread, error) {
	out := make([]stackexchange.Thread, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, q := range questions {
		g.Go(func() error {
			if cached, ok := a.cache.Get(q.ID, withComments); ok {
				out[i] = *cached
				return nil
			}
			thread, err := a.build(ctx, q, withComments)
			if err != nil {
				return err
			}
			a.cache.Put(q.ID, withComments, thread)
			out[i] = *thread
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// build fetches everything below a known question.
func (a *Assembler) build(ctx context.Context, question stackexchange.Question, withComments bool) (*stackexchange.Thread, error) {
	answers, err := a.client.Answers(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	thread := &stackexchange.Thread{Question: question, Answers: answers}
	if !withComments {
		return thread, nil
	}

	var mu sync.Mutex
	thread.AnswerComments = make(map[int64][]stackexchange.Comment)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	g.Go(func() error {
		comments, err := a.client.Comments(ctx, question.ID)
		if err != nil {
			return err
		}
		mu.Lock()
		thread.QuestionComments = comments
		mu.Unlock()
		return nil
	})

	for _, ans := range answers {
		g.Go(func() error {
			comments, err := a.client.Comments(ctx, ans.ID)
			if err != nil {
				return err
			}
			if len(comments) == 0 {
				return nil
			}
			mu.Lock()
			thread.AnswerComments[ans.ID] = comments
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return thread, nil
}
