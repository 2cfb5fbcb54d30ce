package format

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled patterns for HTML-to-text conversion. Stack Exchange
// bodies are a small, well-formed HTML subset (the API sanitizes
// them), so regex conversion is sufficient.
var (
	preCodeOpen  = regexp.MustCompile(`(?is)<pre[^>]*>\s*<code[^>]*>`)
	preCodeClose = regexp.MustCompile(`(?is)\s*</code>\s*</pre>`)
	preOpen      = regexp.MustCompile(`(?i)<pre[^>]*>`)
	preClose     = regexp.MustCompile(`(?i)\s*</pre>`)
	inlineCode   = regexp.MustCompile(`(?i)</?code[^>]*>`)
	blockquote   = regexp.MustCompile(`(?i)<blockquote[^>]*>`)
	listItem     = regexp.MustCompile(`(?i)<li[^>]*>`)
	emphasis     = regexp.MustCompile(`(?i)</?(?:em|i)>`)
	strong       = regexp.MustCompile(`(?i)</?(?:strong|b)>`)
	anchorOpen   = regexp.MustCompile(`(?i)<a[^>]*href="([^"]*)"[^>]*>`)
	blockClose   = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li|tr|blockquote|table|section)>`)
	brTag        = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTag        = regexp.MustCompile(`(?i)<hr\s*/?>`)
	// knownTags strips leftover markup by tag name rather than any
	// <...> run, so decoded generics like vector<int> survive a second
	// pass unchanged.
	knownTags    = regexp.MustCompile(`(?i)</?(?:p|div|pre|code|a|ul|ol|li|em|i|strong|b|h[1-6]|br|hr|blockquote|table|thead|tbody|tr|td|th|span|img|sup|sub|kbd|s|del)\b[^<>]*>`)
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText converts a Stack Exchange HTML body to plain text with
// markdown accents. Code blocks become fenced blocks and inline code
// keeps backticks, since both convey code intent to the reading model.
// HTML entities are decoded last so literal "<" in code does not read
// as markup. The conversion is idempotent on already-clean text.
func HTMLToText(body string) string {
	s := body

	s = preCodeOpen.ReplaceAllString(s, "\n```\n")
	s = preCodeClose.ReplaceAllString(s, "\n```\n")
	s = preOpen.ReplaceAllString(s, "\n```\n")
	s = preClose.ReplaceAllString(s, "\n```\n")
	s = inlineCode.ReplaceAllString(s, "`")
	s = blockquote.ReplaceAllString(s, "\n> ")
	s = listItem.ReplaceAllString(s, "\n- ")
	s = emphasis.ReplaceAllString(s, "*")
	s = strong.ReplaceAllString(s, "**")
	s = anchorOpen.ReplaceAllString(s, "")
	s = brTag.ReplaceAllString(s, "\n")
	s = hrTag.ReplaceAllString(s, "\n---\n")
	s = blockClose.ReplaceAllString(s, "\n\n")
	s = knownTags.ReplaceAllString(s, "")

	s = html.UnescapeString(s)

	s = trailingWS.ReplaceAllString(s, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
