package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryInput is the input for stackoverflow_query.
type QueryInput struct {
	QuestionID      int64  `json:"question_id" jsonschema:"Stack Overflow question ID to query (required)"`
	Expression      string `json:"expression" jsonschema:"JQ expression evaluated against the thread document, e.g. '.answers[] | select(.is_accepted) | .score' (required)"`
	IncludeComments bool   `json:"include_comments,omitempty" jsonschema:"Fetch comments into the document before querying. Default: false"`
	MaxResults      int    `json:"max_results,omitempty" jsonschema:"Max values to return (default: 50)"`
}

// QueryOutput is the output for stackoverflow_query.
type QueryOutput struct {
	Values   []any    `json:"values,omitzero"`
	Errors   []string `json:"errors,omitzero"`
	RawCount int      `json:"raw_count"`
	Hint     string   `json:"hint,omitempty"`
}

const defaultQueryMaxResults = 50

// ToolQuery runs a JQ expression against a question thread. The document
// shape is {question, answers, question_comments?, answer_comments?}.
func ToolQuery(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryInput) (*sdkmcp.CallToolResult, QueryOutput, error) {
		if input.QuestionID <= 0 {
			return nil, QueryOutput{}, ErrInvalidInput("question_id must be a positive integer")
		}
		if input.Expression == "" {
			return nil, QueryOutput{}, ErrInvalidInput("expression must not be empty")
		}
		maxResults := input.MaxResults
		if maxResults == 0 {
			maxResults = defaultQueryMaxResults
		}
		if maxResults < 0 {
			return nil, QueryOutput{}, ErrInvalidInput("max_results must not be negative")
		}

		thread, err := d.Threads.Fetch(ctx, input.QuestionID, input.IncludeComments)
		if err != nil {
			return nil, QueryOutput{}, WrapAPIError(err)
		}
		if thread == nil {
			return nil, QueryOutput{}, ErrNotFound("question", input.QuestionID)
		}

		doc, err := json.Marshal(thread)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("encoding thread: %w", err)
		}

		res, err := d.Query.Run(doc, input.Expression, maxResults)
		if err != nil {
			return nil, QueryOutput{}, ErrInvalidInput(err.Error())
		}

		hint := ""
		if len(res.Values) == 0 && len(res.Errors) == 0 {
			hint = "Expression matched nothing. Top-level keys are question, answers, question_comments, answer_comments."
		}

		return nil, QueryOutput{
			Values:   res.Values,
			Errors:   res.Errors,
			RawCount: res.RawCount,
			Hint:     hint,
		}, nil
	}
}
