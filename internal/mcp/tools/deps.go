package tools

import (
	"github.com/overflowhq/stackoverflow-mcp/internal/config"
	"github.com/overflowhq/stackoverflow-mcp/internal/query"
	"github.com/overflowhq/stackoverflow-mcp/internal/threads"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Deps contains all dependencies needed by tool handlers. The thread
// cache is owned by the assembler; tools never reach it directly.
type Deps struct {
	Client  *stackexchange.Client
	Threads *threads.Assembler
	Config  *config.Config
	Query   *query.Engine
}

// searchLimit normalizes a user-supplied limit against the configured
// default and the API page-size cap.
func (d *Deps) searchLimit(limit int) (int, error) {
	if limit == 0 {
		return d.Config.DefaultSearchLimit, nil
	}
	if limit < 0 || limit > stackexchange.MaxPageSize {
		return 0, ErrInvalidInput("limit must be between 1 and 100")
	}
	return limit, nil
}
