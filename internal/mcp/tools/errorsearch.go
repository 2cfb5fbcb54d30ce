package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/errquery"
	"github.com/overflowhq/stackoverflow-mcp/internal/format"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// SearchErrorInput is the input for stackoverflow_search_error.
type SearchErrorInput struct {
	ErrorMessage    string   `json:"error_message" jsonschema:"Raw error message, copied verbatim from the failing program (required)"`
	Language        string   `json:"language,omitempty" jsonschema:"Programming language, added as a tag filter, e.g. \"python\""`
	Technologies    []string `json:"technologies,omitempty" jsonschema:"Frameworks or libraries involved, added as tag filters, e.g. [\"django\"]"`
	MinScore        int      `json:"min_score,omitempty" jsonschema:"Drop questions scoring below this value"`
	Limit           int      `json:"limit,omitempty" jsonschema:"Max questions to return (default: 5, max: 100)"`
	IncludeComments bool     `json:"include_comments,omitempty" jsonschema:"Include comments on questions and answers. Default: false"`
	ResponseFormat  string   `json:"response_format,omitempty" jsonschema:"Output format: markdown (default) or json"`
}

// SearchErrorOutput is the output for stackoverflow_search_error.
type SearchErrorOutput struct {
	Content        string `json:"content"`
	DistilledQuery string `json:"distilled_query"`
	ResultCount    int    `json:"result_count"`
	QuotaRemaining int    `json:"quota_remaining"`
	Hint           string `json:"hint,omitempty"`
}

// ToolSearchError distills an error message into a search query and
// returns matching threads.
func ToolSearchError(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchErrorInput) (*sdkmcp.CallToolResult, SearchErrorOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchErrorInput) (*sdkmcp.CallToolResult, SearchErrorOutput, error) {
		f, err := format.ParseFormat(input.ResponseFormat)
		if err != nil {
			return nil, SearchErrorOutput{}, WrapAPIError(err)
		}
		limit, err := d.searchLimit(input.Limit)
		if err != nil {
			return nil, SearchErrorOutput{}, err
		}

		distilled := errquery.Distill(input.ErrorMessage)
		if distilled == "" {
			return nil, SearchErrorOutput{}, ErrInvalidInput("error_message contains no searchable text")
		}

		tags := input.Technologies
		if input.Language != "" {
			tags = append([]string{input.Language}, tags...)
		}

		list, hasMore, err := d.searchThreads(ctx, stackexchange.SearchQuery{
			Query:      distilled,
			Tagged:     lowerTags(tags),
			MinScore:   input.MinScore,
			PageSize:   limit,
			MaxResults: limit,
		}, input.IncludeComments)
		if err != nil {
			return nil, SearchErrorOutput{}, err
		}

		content, err := format.Threads(list, f)
		if err != nil {
			return nil, SearchErrorOutput{}, WrapAPIError(err)
		}

		hint := ""
		if len(list) == 0 && len(tags) > 0 {
			hint = "No matches. Retry without language/technologies to widen the search."
		} else if hasMore {
			hint = "More matches exist. Raise min_score or add technologies to narrow."
		}

		return nil, SearchErrorOutput{
			Content:        content,
			DistilledQuery: distilled,
			ResultCount:    len(list),
			QuotaRemaining: d.Client.Quota().Remaining(),
			Hint:           hint,
		}, nil
	}
}

// AnalyzeStackTraceInput is the input for stackoverflow_analyze_stack_trace.
type AnalyzeStackTraceInput struct {
	StackTrace      string `json:"stack_trace" jsonschema:"Complete stack trace, pasted verbatim (required)"`
	Language        string `json:"language" jsonschema:"Programming language the trace came from, added as a tag filter (required)"`
	Limit           int    `json:"limit,omitempty" jsonschema:"Max questions to return (default: 3, max: 100)"`
	IncludeComments bool   `json:"include_comments,omitempty" jsonschema:"Include comments on questions and answers. Default: false"`
	ResponseFormat  string `json:"response_format,omitempty" jsonschema:"Output format: markdown (default) or json"`
}

// AnalyzeStackTraceOutput is the output for stackoverflow_analyze_stack_trace.
type AnalyzeStackTraceOutput struct {
	Content        string `json:"content"`
	ErrorLine      string `json:"error_line"`
	DistilledQuery string `json:"distilled_query"`
	ResultCount    int    `json:"result_count"`
	QuotaRemaining int    `json:"quota_remaining"`
	Hint           string `json:"hint,omitempty"`
}

// ToolAnalyzeStackTrace extracts the significant error line from a stack
// trace and searches for threads about it.
func ToolAnalyzeStackTrace(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeStackTraceInput) (*sdkmcp.CallToolResult, AnalyzeStackTraceOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AnalyzeStackTraceInput) (*sdkmcp.CallToolResult, AnalyzeStackTraceOutput, error) {
		f, err := format.ParseFormat(input.ResponseFormat)
		if err != nil {
			return nil, AnalyzeStackTraceOutput{}, WrapAPIError(err)
		}
		if input.Language == "" {
			return nil, AnalyzeStackTraceOutput{}, ErrInvalidInput("language is required for stack trace analysis")
		}
		limit := input.Limit
		if limit == 0 {
			limit = d.Config.DefaultTraceLimit
		}
		if limit < 0 || limit > stackexchange.MaxPageSize {
			return nil, AnalyzeStackTraceOutput{}, ErrInvalidInput("limit must be between 1 and 100")
		}

		errorLine := errquery.FirstErrorLine(input.StackTrace)
		if errorLine == "" {
			return nil, AnalyzeStackTraceOutput{}, ErrInvalidInput("stack_trace contains no recognizable error line")
		}
		distilled := errquery.Distill(errorLine)
		if distilled == "" {
			return nil, AnalyzeStackTraceOutput{}, ErrInvalidInput("stack_trace contains no searchable text")
		}

		list, _, err := d.searchThreads(ctx, stackexchange.SearchQuery{
			Query:      distilled,
			Tagged:     lowerTags([]string{input.Language}),
			PageSize:   limit,
			MaxResults: limit,
		}, input.IncludeComments)
		if err != nil {
			return nil, AnalyzeStackTraceOutput{}, err
		}

		content, err := format.Threads(list, f)
		if err != nil {
			return nil, AnalyzeStackTraceOutput{}, WrapAPIError(err)
		}

		hint := ""
		if len(list) == 0 {
			hint = "No matches for the final error line. Try stackoverflow_search_error with just the exception message."
		}

		return nil, AnalyzeStackTraceOutput{
			Content:        content,
			ErrorLine:      errorLine,
			DistilledQuery: distilled,
			ResultCount:    len(list),
			QuotaRemaining: d.Client.Quota().Remaining(),
			Hint:           hint,
		}, nil
	}
}
