package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/format"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// SearchInput is the input for stackoverflow_search.
type SearchInput struct {
	Query           string   `json:"query" jsonschema:"Free-text search query (required)"`
	Tags            []string `json:"tags,omitempty" jsonschema:"Restrict results to questions carrying all of these tags, e.g. [\"python\",\"pandas\"]"`
	Sort            string   `json:"sort,omitempty" jsonschema:"Sort order: relevance, votes (default), creation, or activity"`
	MinScore        int      `json:"min_score,omitempty" jsonschema:"Drop questions scoring below this value"`
	Limit           int      `json:"limit,omitempty" jsonschema:"Max questions to return (default: 5, max: 100)"`
	Page            int      `json:"page,omitempty" jsonschema:"1-based result page for scrolling past earlier results"`
	IncludeComments bool     `json:"include_comments,omitempty" jsonschema:"Include comments on questions and answers. Default: false"`
	ResponseFormat  string   `json:"response_format,omitempty" jsonschema:"Output format: markdown (default) or json"`
}

// SearchOutput is the output for stackoverflow_search.
type SearchOutput struct {
	Content        string `json:"content"`
	ResultCount    int    `json:"result_count"`
	HasMore        bool   `json:"has_more"`
	QuotaRemaining int    `json:"quota_remaining"`
	Hint           string `json:"hint,omitempty"`
}

// ToolSearch searches Stack Overflow questions and returns full threads.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		f, err := format.ParseFormat(input.ResponseFormat)
		if err != nil {
			return nil, SearchOutput{}, WrapAPIError(err)
		}
		limit, err := d.searchLimit(input.Limit)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		list, hasMore, err := d.searchThreads(ctx, stackexchange.SearchQuery{
			Query:      input.Query,
			Tagged:     lowerTags(input.Tags),
			Sort:       stackexchange.Sort(strings.ToLower(input.Sort)),
			MinScore:   input.MinScore,
			PageSize:   limit,
			Page:       input.Page,
			MaxResults: limit,
		}, input.IncludeComments)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		content, err := format.Threads(list, f)
		if err != nil {
			return nil, SearchOutput{}, WrapAPIError(err)
		}

		return nil, SearchOutput{
			Content:        content,
			ResultCount:    len(list),
			HasMore:        hasMore,
			QuotaRemaining: d.Client.Quota().Remaining(),
			Hint:           searchHint(input, list, hasMore),
		}, nil
	}
}

// searchHint suggests a concrete next step based on what came back.
func searchHint(input SearchInput, list []stackexchange.Thread, hasMore bool) string {
	switch {
	case len(list) == 0 && input.MinScore > 0:
		return "No matches. Try lowering min_score or removing tag filters."
	case len(list) == 0:
		return "No matches. Try fewer keywords or drop tag filters."
	case hasMore:
		return fmt.Sprintf("Showing %d results. Use page=%d for more, or raise min_score to narrow.", len(list), nextPage(input.Page)+1)
	case len(list) == 1:
		return fmt.Sprintf("Single match. Use stackoverflow_get_answers(question_id=%d) to focus on answers only.", list[0].Question.ID)
	default:
		return "Use stackoverflow_get_question with a question_id for a single thread with comments."
	}
}

func nextPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// lowerTags normalizes tags the way the site stores them.
func lowerTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
