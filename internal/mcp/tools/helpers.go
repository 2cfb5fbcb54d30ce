// Package tools contains MCP tool implementations for Stack Overflow search.
package tools

import (
	"context"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// MIME type constant.
const MimeMarkdown = "text/markdown"

// searchThreads runs a question search and assembles the matches into
// full threads. Errors come back already coded for tool responses.
func (d *Deps) searchThreads(ctx context.Context, q stackexchange.SearchQuery, withComments bool) ([]stackexchange.Thread, bool, error) {
	pager, err := d.Client.SearchQuestions(q)
	if err != nil {
		return nil, false, WrapAPIError(err)
	}
	questions, err := pager.Collect(ctx)
	if err != nil {
		return nil, false, WrapAPIError(err)
	}
	list, err := d.Threads.FromQuestions(ctx, questions, withComments)
	if err != nil {
		return nil, false, WrapAPIError(err)
	}
	return list, pager.HasMore(), nil
}
