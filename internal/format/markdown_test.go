package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

func intPtr(v int64) *int64 { return &v }

func sampleThread() stackexchange.Thread {
	return stackexchange.Thread{
		Question: stackexchange.Question{
			ID:               10,
			Title:            "How do generators work?",
			Body:             "<p>What does <code>yield</code> do?</p>",
			Score:            42,
			AnswerCount:      2,
			IsAnswered:       true,
			AcceptedAnswerID: intPtr(101),
			CreationDate:     1700000000,
			Tags:             []string{"python", "generators"},
			Link:             "https://stackoverflow.com/q/10",
		},
		Answers: []stackexchange.Answer{
			{ID: 101, QuestionID: 10, Score: 7, IsAccepted: true, Body: "<p>It suspends the function.</p>", CreationDate: 1700000100},
			{ID: 102, QuestionID: 10, Score: 30, IsAccepted: false, Body: "<p>See the docs.</p>", CreationDate: 1700000200},
		},
	}
}

func TestThreads_Markdown(t *testing.T) {
	out, err := Threads([]stackexchange.Thread{sampleThread()}, FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "# How do generators work?")
	assert.Contains(t, out, "**Score:** 42 | **Answers:** 2 | **Tags:** python, generators")
	assert.Contains(t, out, "What does `yield` do?")
	assert.Contains(t, out, "### ✓ Answer (Score: 7)")
	assert.Contains(t, out, "### Answer (Score: 30)")
	assert.Contains(t, out, "[View on Stack Overflow](https://stackoverflow.com/q/10)")

	// Input order preserved: the accepted answer was given first and
	// must render first even though it scores lower.
	accepted := strings.Index(out, "✓ Answer (Score: 7)")
	other := strings.Index(out, "Answer (Score: 30)")
	assert.Less(t, accepted, other)
}

func TestThreads_MarkdownWithComments(t *testing.T) {
	thread := sampleThread()
	thread.QuestionComments = []stackexchange.Comment{
		{ID: 1, PostID: 10, Score: 3, Body: "Clarify the version?"},
	}
	thread.AnswerComments = map[int64][]stackexchange.Comment{
		101: {{ID: 2, PostID: 101, Score: 1, Body: "Great answer"}},
	}

	out, err := Threads([]stackexchange.Thread{thread}, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "### Question Comments")
	assert.Contains(t, out, "- Clarify the version? *(Score: 3)*")
	assert.Contains(t, out, "#### Answer Comments")
	assert.Contains(t, out, "- Great answer *(Score: 1)*")
}

func TestThreads_JSON(t *testing.T) {
	out, err := Threads([]stackexchange.Thread{sampleThread()}, FormatJSON)
	require.NoError(t, err)

	var decoded []stackexchange.Thread
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, int64(10), decoded[0].Question.ID)
}

func TestThreads_Empty(t *testing.T) {
	out, err := Threads(nil, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "No results found.", out)
}

func TestThreads_MissingTitle(t *testing.T) {
	thread := sampleThread()
	thread.Question.Title = "  "

	_, err := Threads([]stackexchange.Thread{thread}, FormatMarkdown)
	require.Error(t, err)
	assert.True(t, stackexchange.IsInvalidArgument(err), "got %v", err)
	assert.Contains(t, err.Error(), "title")
}

func TestThreads_MissingQuestionID(t *testing.T) {
	thread := sampleThread()
	thread.Question.ID = 0

	_, err := Threads([]stackexchange.Thread{thread}, FormatMarkdown)
	require.Error(t, err)
	assert.True(t, stackexchange.IsInvalidArgument(err))
}

func TestThreads_FormatIdempotent(t *testing.T) {
	out, err := Threads([]stackexchange.Thread{sampleThread()}, FormatMarkdown)
	require.NoError(t, err)

	// Feeding rendered text back through as a question body yields the
	// same visible text.
	thread := sampleThread()
	thread.Question.Body = out
	again, err := Threads([]stackexchange.Thread{thread}, FormatMarkdown)
	require.NoError(t, err)

	rendered := HTMLToText(out)
	assert.Contains(t, again, rendered)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
	assert.True(t, stackexchange.IsInvalidArgument(err))
}
