// Package format renders question threads as markdown or JSON text
// blocks for the calling model. Rendering is pure: no I/O, and the
// input order of answers and comments is always preserved.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Format selects the rendering of a thread.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a response_format argument. Empty means markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", &stackexchange.Error{
			Kind:    stackexchange.KindInvalidArgument,
			Message: fmt.Sprintf("unrecognized response format %q (want markdown or json)", s),
		}
	}
}

// Threads renders threads in the requested format. Returns an
// invalid-argument error when a thread misses a required field.
func Threads(list []stackexchange.Thread, f Format) (string, error) {
	if err := validate(list); err != nil {
		return "", err
	}
	if f == FormatJSON {
		b, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding threads: %w", err)
		}
		return string(b), nil
	}

	if len(list) == 0 {
		return "No results found.", nil
	}

	var sb strings.Builder
	for i, t := range list {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeThread(&sb, &t)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

// Answers renders an answer list on its own, without the surrounding
// question. Input order is preserved.
func Answers(list []stackexchange.Answer, f Format) (string, error) {
	for i := range list {
		if list[i].ID <= 0 {
			return "", &stackexchange.Error{
				Kind:    stackexchange.KindInvalidArgument,
				Message: fmt.Sprintf("answer %d is missing required field: id", i),
			}
		}
	}
	if f == FormatJSON {
		if list == nil {
			list = []stackexchange.Answer{}
		}
		b, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding answers: %w", err)
		}
		return string(b), nil
	}

	if len(list) == 0 {
		return "No results found.", nil
	}

	var sb strings.Builder
	for i := range list {
		a := &list[i]
		marker := ""
		if a.IsAccepted {
			marker = "✓ "
		}
		fmt.Fprintf(&sb, "## %sAnswer (Score: %d)\n\n%s\n\n", marker, a.Score, HTMLToText(a.Body))
	}
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func writeThread(sb *strings.Builder, t *stackexchange.Thread) {
	q := &t.Question
	fmt.Fprintf(sb, "# %s\n\n", HTMLToText(q.Title))
	fmt.Fprintf(sb, "**Score:** %d | **Answers:** %d", q.Score, q.AnswerCount)
	if len(q.Tags) > 0 {
		fmt.Fprintf(sb, " | **Tags:** %s", strings.Join(q.Tags, ", "))
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "## Question\n\n%s\n\n", HTMLToText(q.Body))

	if len(t.QuestionComments) > 0 {
		sb.WriteString("### Question Comments\n\n")
		writeComments(sb, t.QuestionComments)
		sb.WriteString("\n")
	}

	if len(t.Answers) > 0 {
		sb.WriteString("## Answers\n\n")
		for i := range t.Answers {
			a := &t.Answers[i]
			marker := ""
			if a.IsAccepted {
				marker = "✓ "
			}
			fmt.Fprintf(sb, "### %sAnswer (Score: %d)\n\n%s\n\n", marker, a.Score, HTMLToText(a.Body))

			if comments := t.AnswerComments[a.ID]; len(comments) > 0 {
				sb.WriteString("#### Answer Comments\n\n")
				writeComments(sb, comments)
				sb.WriteString("\n")
			}
		}
	}

	fmt.Fprintf(sb, "---\n\n[View on Stack Overflow](%s)\n", q.Link)
}

func writeComments(sb *strings.Builder, comments []stackexchange.Comment) {
	for i := range comments {
		c := &comments[i]
		fmt.Fprintf(sb, "- %s *(Score: %d)*\n", HTMLToText(c.Body), c.Score)
	}
}

// validate checks the record shape the renderer relies on.
func validate(list []stackexchange.Thread) error {
	for i := range list {
		t := &list[i]
		if t.Question.ID <= 0 {
			return missingField(i, "question id")
		}
		if strings.TrimSpace(t.Question.Title) == "" {
			return missingField(i, "title")
		}
		if t.Question.Link == "" {
			return missingField(i, "link")
		}
		for j := range t.Answers {
			if t.Answers[j].ID <= 0 {
				return missingField(i, fmt.Sprintf("answer %d id", j))
			}
		}
	}
	return nil
}

func missingField(idx int, field string) error {
	return &stackexchange.Error{
		Kind:    stackexchange.KindInvalidArgument,
		Message: fmt.Sprintf("thread %d is missing required field: %s", idx, field),
	}
}
