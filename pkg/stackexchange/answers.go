package stackexchange

import (
	"context"
	"sort"
	"strconv"
)

// answerPageCap bounds how many answer pages are fetched for one
// question. 100 answers per page; few questions exceed it.
const answerPageCap = 3

// Answers fetches all answers for a question, ordered by the
// presentation contract: accepted answer first, then score descending,
// then creation ascending. An unknown question id yields an empty
// slice, not an error.
func (c *Client) Answers(ctx context.Context, questionID int64) ([]Answer, error) {
	if questionID <= 0 {
		return nil, invalidArgument("question id must be positive")
	}

	var answers []Answer
	for page := 1; page <= answerPageCap; page++ {
		params := c.commonParams()
		params.Set("filter", answerFilter)
		params.Set("sort", "votes")
		params.Set("order", "desc")
		params.Set("page", strconv.Itoa(page))
		params.Set("pagesize", strconv.Itoa(MaxPageSize))

		p, err := getPage[Answer](ctx, c, "/questions/"+strconv.FormatInt(questionID, 10)+"/answers", params)
		if err != nil {
			return nil, err
		}
		answers = append(answers, p.Items...)
		if !p.HasMore {
			break
		}
	}

	SortAnswers(answers)
	return answers, nil
}

// SortAnswers orders answers in place: accepted first, then score
// descending, then creation ascending. The sort is stable so fully
// tied answers keep their input order.
func SortAnswers(answers []Answer) {
	sort.SliceStable(answers, func(i, j int) bool {
		a, b := answers[i], answers[j]
		if a.IsAccepted != b.IsAccepted {
			return a.IsAccepted
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.CreationDate < b.CreationDate
	})
}

// Comments fetches the comments on a question or answer, ordered by
// score descending as the API returns them.
func (c *Client) Comments(ctx context.Context, postID int64) ([]Comment, error) {
	if postID <= 0 {
		return nil, invalidArgument("post id must be positive")
	}

	params := c.commonParams()
	params.Set("filter", commentFilter)
	params.Set("sort", "votes")
	params.Set("order", "desc")

	p, err := getPage[Comment](ctx, c, "/posts/"+strconv.FormatInt(postID, 10)+"/comments", params)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}
