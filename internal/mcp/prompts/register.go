package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "debug_error",
		Description: "RECOMMENDED: Debug a runtime error using Stack Overflow. Start here - provides a workflow for distilling the error, finding relevant threads, and applying accepted answers.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "error_message",
				Description: "The error message or stack trace to debug",
				Required:    false,
			},
			{
				Name:        "language",
				Description: "Programming language the error came from",
				Required:    false,
			},
		},
	}, HandleDebugError(cfg))
}
