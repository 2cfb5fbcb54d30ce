package stackexchange

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// SearchQuestions validates the query and returns a pager over the
// matching questions. No network call is made until Next.
func (c *Client) SearchQuestions(query SearchQuery) (*QuestionPager, error) {
	if err := query.normalize(c.pageSize); err != nil {
		return nil, err
	}
	return &QuestionPager{c: c, query: query, page: query.Page, more: true}, nil
}

// QuestionPager is a lazy, finite, forward-only sequence of questions.
// It is not restartable and not safe for concurrent use; each tool
// invocation constructs its own.
type QuestionPager struct {
	c       *Client
	query   SearchQuery
	page    int
	yielded int
	more    bool
	backoff time.Duration
}

// More reports whether another call to Next may yield questions. It
// accounts for the query's MaxResults bound, so it goes false once the
// bound is reached even when the API holds further matches.
func (p *QuestionPager) More() bool {
	return p.more && p.yielded < p.query.MaxResults
}

// HasMore reports whether the API held further matches past the last
// fetched page, independent of the MaxResults bound. This is the flag
// to surface to callers asking "are there more results than I got".
func (p *QuestionPager) HasMore() bool {
	return p.more
}

// Backoff returns the backoff hint from the most recent page, if any.
func (p *QuestionPager) Backoff() time.Duration { return p.backoff }

// Next fetches the next page of questions. Returns an empty slice once
// the sequence is exhausted. Questions below the query's MinScore are
// dropped client-side without counting against MaxResults.
func (p *QuestionPager) Next(ctx context.Context) ([]Question, error) {
	if !p.More() {
		return nil, nil
	}

	params := p.c.commonParams()
	params.Set("q", p.query.Query)
	params.Set("sort", string(p.query.Sort))
	params.Set("order", "desc")
	params.Set("filter", questionFilter)
	params.Set("page", strconv.Itoa(p.page))
	params.Set("pagesize", strconv.Itoa(p.query.PageSize))
	if len(p.query.Tagged) > 0 {
		params.Set("tagged", strings.Join(p.query.Tagged, ";"))
	}

	page, err := getPage[Question](ctx, p.c, "/search/advanced", params)
	if err != nil {
		p.more = false
		return nil, err
	}

	p.page++
	p.more = page.HasMore
	p.backoff = page.Backoff

	items := page.Items
	if p.query.MinScore > 0 {
		kept := items[:0]
		for _, q := range items {
			if q.Score >= p.query.MinScore {
				kept = append(kept, q)
			}
		}
		items = kept
	}

	if remaining := p.query.MaxResults - p.yielded; len(items) > remaining {
		items = items[:remaining]
	}
	p.yielded += len(items)
	return items, nil
}

// Collect drains the pager up to the query's MaxResults bound.
func (p *QuestionPager) Collect(ctx context.Context) ([]Question, error) {
	var all []Question
	for p.More() {
		items, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// Question fetches a single question by id. Returns (nil, nil) when
// the id is unknown.
func (c *Client) Question(ctx context.Context, id int64) (*Question, error) {
	if id <= 0 {
		return nil, invalidArgument("question id must be positive")
	}

	params := c.commonParams()
	params.Set("filter", questionFilter)

	page, err := getPage[Question](ctx, c, "/questions/"+strconv.FormatInt(id, 10), params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}
