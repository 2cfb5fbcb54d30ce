// Package errquery distills raw error messages and stack traces into
// search queries. Compiler and runtime errors carry run-specific noise
// (addresses, file paths, line numbers) that makes full-text search
// miss the underlying question.
package errquery

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	hexAddress   = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	unixPath     = regexp.MustCompile(`(?:/[\w.\-]+){2,}`)
	windowsPath  = regexp.MustCompile(`[A-Za-z]:\\(?:[\w.\- ]+\\?)+`)
	lineColRef   = regexp.MustCompile(`(?i)(?:line|col(?:umn)?)[\s:]+\d+`)
	trailingLoc  = regexp.MustCompile(`:\d+(?::\d+)?\b`)
	uuidLiteral  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	longNumber   = regexp.MustCompile(`\b\d{5,}\b`)
	whitespace   = regexp.MustCompile(`\s+`)
	frameMarkers = regexp.MustCompile(`(?m)^\s*(?:at\s+|File\s+"|goroutine\s+\d+|Traceback)`)
)

// maxQueryLen bounds distilled queries; the search endpoint rejects
// very long free-text queries.
const maxQueryLen = 240

// folder lowercases with full Unicode case folding.
var folder = cases.Fold()

// Distill reduces an error message to a stable, searchable query:
// Unicode-normalized, case-folded, with addresses, paths, ids, and
// source locations stripped.
func Distill(message string) string {
	s := norm.NFKC.String(message)
	s = folder.String(s)

	s = hexAddress.ReplaceAllString(s, "")
	s = uuidLiteral.ReplaceAllString(s, "")
	s = windowsPath.ReplaceAllString(s, "")
	s = unixPath.ReplaceAllString(s, "")
	s = lineColRef.ReplaceAllString(s, "")
	s = trailingLoc.ReplaceAllString(s, "")
	s = longNumber.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if len(s) > maxQueryLen {
		cut := s[:maxQueryLen]
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
		s = cut
	}
	return s
}

// FirstErrorLine extracts the line of a stack trace most likely to
// name the error: the first line that is not a frame marker. Python
// tracebacks put it last, so when the first line opens a traceback the
// scan runs bottom-up instead.
func FirstErrorLine(stackTrace string) string {
	lines := strings.Split(stackTrace, "\n")

	bottomUp := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		bottomUp = strings.HasPrefix(strings.TrimSpace(line), "Traceback")
		break
	}

	if bottomUp {
		for i := len(lines) - 1; i >= 0; i-- {
			if line := strings.TrimSpace(lines[i]); line != "" && !frameMarkers.MatchString(lines[i]) {
				return line
			}
		}
	}
	for _, l := range lines {
		if line := strings.TrimSpace(l); line != "" && !frameMarkers.MatchString(l) {
			return line
		}
	}
	return strings.TrimSpace(stackTrace)
}
