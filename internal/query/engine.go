// Package query provides JQ-based extraction over thread JSON, so a
// caller can pull specific fields out of a fetched question without
// paging whole bodies through its context.
package query

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
)

// Engine executes JQ expressions against JSON data.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the values a query produced.
type Result struct {
	Values   []any    `json:"values"`
	Errors   []string `json:"errors,omitempty"`
	RawCount int      `json:"raw_count"`
}

// Run executes a JQ expression against a JSON document. maxResults
// bounds the number of values returned; 0 means unbounded.
func (e *Engine) Run(data []byte, expression string, maxResults int) (*Result, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compiling jq expression: %w", err)
	}

	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	result := &Result{Values: make([]any, 0)}
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(qerr, &halt) && halt.Value() == nil {
				break
			}
			result.Errors = append(result.Errors, qerr.Error())
			continue
		}
		if v == nil {
			continue
		}
		result.RawCount++
		result.Values = append(result.Values, v)
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}
	}
	return result, nil
}
