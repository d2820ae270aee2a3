package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML replaces the five HTML metacharacters with their entities. The
// apostrophe is written as &#039; so output matches what the page script
// produces for the same input.
func EscapeHTML(value string) string {
	if value == "" {
		return ""
	}
	return htmlEscaper.Replace(value)
}

// EscapeMultiline escapes value and turns line breaks into <br>. CRLF pairs
// count as a single break.
func EscapeMultiline(value string) string {
	escaped := EscapeHTML(strings.ReplaceAll(value, "\r\n", "\n"))
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
