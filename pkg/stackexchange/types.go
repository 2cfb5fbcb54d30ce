package stackexchange

import (
	"fmt"
	"strings"
	"time"
)

// MaxPageSize is the largest page size the Stack Exchange API accepts.
const MaxPageSize = 100

// Sort keys accepted by the search endpoint.
type Sort string

const (
	SortRelevance Sort = "relevance"
	SortVotes     Sort = "votes"
	SortCreation  Sort = "creation"
	SortActivity  Sort = "activity"
)

// validSorts maps recognized sort keys for query validation.
var validSorts = map[Sort]bool{
	SortRelevance: true,
	SortVotes:     true,
	SortCreation:  true,
	SortActivity:  true,
}

// Question is a Stack Exchange question as returned by the API.
// Bodies are HTML; rendering to text is the formatter's job.
type Question struct {
	ID               int64    `json:"question_id"`
	Title            string   `json:"title"`
	Body             string   `json:"body"`
	Score            int      `json:"score"`
	AnswerCount      int      `json:"answer_count"`
	IsAnswered       bool     `json:"is_answered"`
	AcceptedAnswerID *int64   `json:"accepted_answer_id,omitempty"`
	CreationDate     int64    `json:"creation_date"`
	Tags             []string `json:"tags"`
	Link             string   `json:"link"`
}

// CreatedAt returns the question creation time.
func (q *Question) CreatedAt() time.Time {
	return time.Unix(q.CreationDate, 0).UTC()
}

// Answer is a Stack Exchange answer as returned by the API.
type Answer struct {
	ID           int64  `json:"answer_id"`
	QuestionID   int64  `json:"question_id"`
	Score        int    `json:"score"`
	IsAccepted   bool   `json:"is_accepted"`
	Body         string `json:"body"`
	CreationDate int64  `json:"creation_date"`
	Link         string `json:"link,omitempty"`
}

// CreatedAt returns the answer creation time.
func (a *Answer) CreatedAt() time.Time {
	return time.Unix(a.CreationDate, 0).UTC()
}

// Comment is a comment on a question or answer.
type Comment struct {
	ID           int64  `json:"comment_id"`
	PostID       int64  `json:"post_id"`
	Score        int    `json:"score"`
	Body         string `json:"body"`
	CreationDate int64  `json:"creation_date"`
}

// SearchQuery describes a question search. Constructed per tool
// invocation; never persisted.
type SearchQuery struct {
	Query    string   // free-text query, must be non-empty after trimming
	Tagged   []string // optional tag filter, ANDed by the API
	Sort     Sort     // empty defaults to SortVotes
	MinScore int      // drop questions scoring below this (client-side)
	PageSize int      // 1..MaxPageSize; 0 uses the client default
	Page     int      // 1-based starting page; 0 means 1

	// MaxResults bounds the total number of questions the pager yields
	// across pages. 0 means one page only.
	MaxResults int
}

// normalize validates the query and fills defaults in place.
func (q *SearchQuery) normalize(defaultPageSize int) error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return invalidArgument("search query must not be empty")
	}
	if q.Sort == "" {
		q.Sort = SortVotes
	}
	if !validSorts[q.Sort] {
		return invalidArgument(fmt.Sprintf("unrecognized sort %q (want relevance, votes, creation, or activity)", q.Sort))
	}
	if q.PageSize == 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return invalidArgument(fmt.Sprintf("page size %d out of range 1..%d", q.PageSize, MaxPageSize))
	}
	if q.Page < 0 {
		return invalidArgument("page must not be negative")
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.MaxResults < 0 {
		return invalidArgument("max results must not be negative")
	}
	if q.MaxResults == 0 {
		q.MaxResults = q.PageSize
	}
	return nil
}

// Page is one page of API results. Consumed immediately by the caller;
// the backoff hint applies to the whole client, not just this request.
type Page[T any] struct {
	Items   []T
	HasMore bool
	Backoff time.Duration
}

// wrapper is the common Stack Exchange response envelope.
type wrapper[T any] struct {
	Items          []T    `json:"items"`
	HasMore        bool   `json:"has_more"`
	Backoff        int    `json:"backoff"`
	QuotaMax       int    `json:"quota_max"`
	QuotaRemaining int    `json:"quota_remaining"`
	ErrorID        int    `json:"error_id"`
	ErrorName      string `json:"error_name"`
	ErrorMessage   string `json:"error_message"`
}
