// Package prompts contains MCP prompt implementations for Stack Overflow search.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	Site               string
	DefaultSearchLimit int
}
