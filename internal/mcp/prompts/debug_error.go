package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDebugError implements the error debugging workflow.
func HandleDebugError(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		errorMessage := ""
		language := ""
		if args != nil {
			if v, ok := args["error_message"]; ok {
				errorMessage = v
			}
			if v, ok := args["language"]; ok {
				language = v
			}
		}

		var sb strings.Builder

		// 1. Role/Persona
		sb.WriteString("# Debug a Runtime Error with Stack Overflow\n\n")
		sb.WriteString("You are a debugging expert. Your goal is to resolve a runtime error by finding ")
		sb.WriteString("community-verified fixes on Stack Overflow and adapting them to the user's code.\n\n")

		// 2. Task Overview
		sb.WriteString("## Task Overview\n\n")
		sb.WriteString("Error messages carry volatile noise (file paths, memory addresses, line numbers) that ")
		sb.WriteString("ruins keyword search. The search tools strip that noise automatically: paste errors ")
		sb.WriteString("verbatim and let the server distill them.\n\n")

		// 3. Context Usage Guide
		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- **stackoverflow_search_error**: Low cost -- paste the error message verbatim\n")
		sb.WriteString("- **stackoverflow_analyze_stack_trace**: Low cost -- paste the complete trace, the significant line is extracted for you\n")
		sb.WriteString("- **stackoverflow_get_answers**: Medium cost -- answers only, accepted answer first\n")
		sb.WriteString("- **stackoverflow_get_question**: Higher cost -- full thread; add include_comments=true only when answers are inconclusive\n")
		sb.WriteString("- **stackoverflow_query**: Targeted extraction from a thread with a JQ expression\n\n")

		// 4. Workflow Steps
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Search for the error** -- Use the full trace when you have one, otherwise the message\n")
		sb.WriteString("   - Pass the language so results are tag-filtered\n")
		sb.WriteString("   - Check distilled_query in the output to see what was actually searched\n\n")
		sb.WriteString("2. **Evaluate the matches** -- Prefer threads with an accepted answer (marked ✓) and high scores\n")
		sb.WriteString("   - Mind version drift: a 2012 answer may predate the user's library version\n\n")
		sb.WriteString("3. **Apply the fix** -- Adapt the accepted answer to the user's code, never paste it blindly\n")
		sb.WriteString("   - Explain why the error happened, not just the patch\n\n")

		// 5. Suggested Tools
		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString("# Step 1: Search for the error\n")
		switch {
		case errorMessage != "" && language != "":
			fmt.Fprintf(&sb, "stackoverflow_search_error(error_message=%q, language=%q)\n\n", errorMessage, language)
		case errorMessage != "":
			fmt.Fprintf(&sb, "stackoverflow_search_error(error_message=%q)\n\n", errorMessage)
		default:
			sb.WriteString("stackoverflow_search_error(error_message=\"<paste verbatim>\", language=\"<language>\")\n\n")
		}
		sb.WriteString("# Step 2: Focus on the best thread's answers\n")
		sb.WriteString("stackoverflow_get_answers(question_id=<id from step 1>)\n\n")
		sb.WriteString("# Step 3: Pull the discussion if answers are inconclusive\n")
		sb.WriteString("stackoverflow_get_question(question_id=<id>, include_comments=true)\n")
		sb.WriteString("```\n\n")

		// 6. Error Recovery
		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **No matches?** Drop language/technologies filters, or search just the exception class name with stackoverflow_search\n")
		sb.WriteString("- **Rate limited or out of quota?** The error says when to retry; tell the user instead of hammering\n")
		sb.WriteString("- **Results look stale?** Re-run with sort=\"creation\" to surface recent threads\n\n")

		// 7. Success Criteria
		sb.WriteString("## Success Criteria\n\n")
		sb.WriteString("Task is complete when:\n")
		sb.WriteString("- The root cause of the error is explained with a working fix, OR\n")
		sb.WriteString("- No relevant thread exists and you have said so explicitly with the distilled query you tried\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for debugging runtime errors with Stack Overflow",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
