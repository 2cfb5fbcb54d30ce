package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: stackoverflow_search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_search",
		Description: "Search Stack Overflow questions by free text, optionally filtered by tags and minimum score. Returns full threads (question, answers, optional comments) rendered as markdown or JSON. Start here for general programming questions.",
	}, ToolSearch(d))

	// Tool 2: stackoverflow_search_error
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_search_error",
		Description: "Search Stack Overflow for a specific error message. Paste the error verbatim; volatile details (paths, addresses, line numbers) are stripped before searching. Add language and technologies to narrow by tag.",
	}, ToolSearchError(d))

	// Tool 3: stackoverflow_analyze_stack_trace
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_analyze_stack_trace",
		Description: "Analyze a full stack trace: extracts the significant error line, strips volatile details, and searches Stack Overflow for matching threads. Use when you have a complete trace rather than a single error message.",
	}, ToolAnalyzeStackTrace(d))

	// Tool 4: stackoverflow_get_question
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_get_question",
		Description: "Get a single Stack Overflow question by ID as a full thread with all answers, accepted answer first. Set include_comments=true for the discussion under the question and each answer.",
	}, ToolGetQuestion(d))

	// Tool 5: stackoverflow_get_answers
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_get_answers",
		Description: "Get only the answers to a Stack Overflow question, accepted answer first then by score. Lighter than get_question when the question text is already known.",
	}, ToolGetAnswers(d))

	// Tool 6: stackoverflow_query
	AddTool(srv, &sdkmcp.Tool{
		Name:        "stackoverflow_query",
		Description: "Run a JQ expression against a question thread document ({question, answers, question_comments, answer_comments}). Use for targeted extraction, e.g. '.answers[] | select(.is_accepted) | .body' or '[.answers[].score] | max'.",
	}, ToolQuery(d))
}
