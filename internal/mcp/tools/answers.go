package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/format"
)

// GetAnswersInput is the input for stackoverflow_get_answers.
type GetAnswersInput struct {
	QuestionID     int64  `json:"question_id" jsonschema:"Stack Overflow question ID (required)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"Output format: markdown (default) or json"`
}

// GetAnswersOutput is the output for stackoverflow_get_answers.
type GetAnswersOutput struct {
	Content        string `json:"content"`
	AnswerCount    int    `json:"answer_count"`
	HasAccepted    bool   `json:"has_accepted"`
	QuotaRemaining int    `json:"quota_remaining"`
	Hint           string `json:"hint,omitempty"`
}

// ToolGetAnswers fetches the answers to a question, accepted answer first.
func ToolGetAnswers(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetAnswersInput) (*sdkmcp.CallToolResult, GetAnswersOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetAnswersInput) (*sdkmcp.CallToolResult, GetAnswersOutput, error) {
		if input.QuestionID <= 0 {
			return nil, GetAnswersOutput{}, ErrInvalidInput("question_id must be a positive integer")
		}
		f, err := format.ParseFormat(input.ResponseFormat)
		if err != nil {
			return nil, GetAnswersOutput{}, WrapAPIError(err)
		}

		answers, err := d.Client.Answers(ctx, input.QuestionID)
		if err != nil {
			return nil, GetAnswersOutput{}, WrapAPIError(err)
		}

		content, err := format.Answers(answers, f)
		if err != nil {
			return nil, GetAnswersOutput{}, WrapAPIError(err)
		}

		hasAccepted := len(answers) > 0 && answers[0].IsAccepted

		hint := ""
		if len(answers) == 0 {
			hint = fmt.Sprintf("No answers yet. Use stackoverflow_get_question(question_id=%d, include_comments=true) to check the discussion.", input.QuestionID)
		}

		return nil, GetAnswersOutput{
			Content:        content,
			AnswerCount:    len(answers),
			HasAccepted:    hasAccepted,
			QuotaRemaining: d.Client.Quota().Remaining(),
			Hint:           hint,
		}, nil
	}
}
