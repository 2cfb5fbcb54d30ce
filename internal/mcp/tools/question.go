package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/format"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// GetQuestionInput is the input for stackoverflow_get_question.
type GetQuestionInput struct {
	QuestionID      int64  `json:"question_id" jsonschema:"Stack Overflow question ID (required)"`
	IncludeComments bool   `json:"include_comments,omitempty" jsonschema:"Include comments on the question and its answers. Default: false"`
	ResponseFormat  string `json:"response_format,omitempty" jsonschema:"Output format: markdown (default) or json"`
}

// GetQuestionOutput is the output for stackoverflow_get_question.
type GetQuestionOutput struct {
	Content        string `json:"content"`
	AnswerCount    int    `json:"answer_count"`
	QuotaRemaining int    `json:"quota_remaining"`
	Hint           string `json:"hint,omitempty"`
}

// ToolGetQuestion fetches one question as a full thread.
func ToolGetQuestion(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetQuestionInput) (*sdkmcp.CallToolResult, GetQuestionOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetQuestionInput) (*sdkmcp.CallToolResult, GetQuestionOutput, error) {
		if input.QuestionID <= 0 {
			return nil, GetQuestionOutput{}, ErrInvalidInput("question_id must be a positive integer")
		}
		f, err := format.ParseFormat(input.ResponseFormat)
		if err != nil {
			return nil, GetQuestionOutput{}, WrapAPIError(err)
		}

		thread, err := d.Threads.Fetch(ctx, input.QuestionID, input.IncludeComments)
		if err != nil {
			return nil, GetQuestionOutput{}, WrapAPIError(err)
		}
		if thread == nil {
			return nil, GetQuestionOutput{}, ErrNotFound("question", input.QuestionID)
		}

		content, err := format.Threads([]stackexchange.Thread{*thread}, f)
		if err != nil {
			return nil, GetQuestionOutput{}, WrapAPIError(err)
		}

		hint := ""
		if !input.IncludeComments {
			hint = fmt.Sprintf("Set include_comments=true to see discussion on question %d.", input.QuestionID)
		}

		return nil, GetQuestionOutput{
			Content:        content,
			AnswerCount:    len(thread.Answers),
			QuotaRemaining: d.Client.Quota().Remaining(),
			Hint:           hint,
		}, nil
	}
}
