// Package stackexchange provides a client for the Stack Exchange 2.3
// REST API, covering question search, single-question lookup, answers,
// and comments.
//
// # Quick Start
//
// Create a client and search:
//
//	c := stackexchange.New(stackexchange.WithAPIKey(key))
//	pager, err := c.SearchQuestions(stackexchange.SearchQuery{
//	    Query:      "python generators",
//	    Tagged:     []string{"python"},
//	    MaxResults: 10,
//	})
//	questions, err := pager.Collect(ctx)
//
// # Pagination
//
// SearchQuestions returns a lazy, forward-only pager. Each call to Next
// issues one upstream request; the sequence ends when the API reports
// has_more=false or the query's MaxResults bound is reached. Pagers are
// not restartable.
//
// # Rate limits and quota
//
// The client paces requests with a token bucket and honors the API's
// backoff field process-wide. The daily quota reported in every
// response is tracked by a QuotaGauge; once it reads zero, calls fail
// with a quota-exhausted error without touching the network until the
// provider's daily reset.
//
// # Errors
//
// Every failure is classified into exactly one kind: invalid argument,
// rate limited, quota exhausted, or upstream unavailable. Transient
// failures are retried a bounded number of times (two by default) with
// jittered exponential backoff before being surfaced. Unknown question
// ids are not errors; they read as empty results.
package stackexchange
