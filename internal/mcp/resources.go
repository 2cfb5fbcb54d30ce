package mcp

import (
	"context"
	"strconv"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/format"
	"github.com/overflowhq/stackoverflow-mcp/internal/mcp/tools"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Resource URI scheme: stackoverflow://
// Supported URIs:
//   stackoverflow://question/{id}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "stackoverflow://question/{id}",
		Name:        "Question Thread",
		Description: "Full question thread with answers and comments as markdown. Served from cache when a tool already fetched the thread.",
		MIMEType:    tools.MimeMarkdown,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceQuestion)
}

func (s *Server) handleResourceQuestion(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	id, err := parseQuestionURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	thread, err := s.deps.Threads.Fetch(ctx, id, true)
	if err != nil {
		return nil, tools.WrapAPIError(err)
	}
	if thread == nil {
		return nil, tools.ErrNotFound("question", id)
	}

	text, err := format.Threads([]stackexchange.Thread{*thread}, format.FormatMarkdown)
	if err != nil {
		return nil, tools.WrapAPIError(err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeMarkdown,
				Text:     text,
			},
		},
	}, nil
}

// parseQuestionURI extracts the question id from a stackoverflow:// URI.
func parseQuestionURI(uri string) (int64, error) {
	if !strings.HasPrefix(uri, "stackoverflow://") {
		return 0, tools.ErrInvalidInput("invalid URI scheme: expected stackoverflow://")
	}

	path := strings.TrimPrefix(uri, "stackoverflow://")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] != "question" {
		return 0, tools.ErrInvalidInput("unsupported resource URI: want stackoverflow://question/{id}")
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, tools.ErrInvalidInput("question id must be a positive integer")
	}
	return id, nil
}
