package plantuml

import (
	"regexp"
	"strings"
)

var preamble = []string{
	"@startuml",
	"set namespaceSeparator none",
	"skinparam backgroundColor #f9f9f9",
	"skinparam shadowing false",
	"skinparam activity {",
	"  BackgroundColor #dfefff",
	"  BorderColor #3399cc",
	"  FontColor black",
	"  FontSize 14",
	"  FontName Consolas",
	"  FontStyle bold",
	"  Padding 15",
	"  ArrowThickness 0.8",
	"  ArrowColor #444444",
	"  BarColor #3399cc",
	"}",
	"skinparam note {",
	"  FontSize 13",
	"  BackgroundColor #ffffcc",
	"  BorderColor #cccccc",
	"  Padding 10",
	"  Margin 10",
	"}",
	"skinparam defaultTextAlignment left",
	"skinparam maxMessageSize 100",
}

var legend = []string{
	"legend",
	"  IF block -> true or false branch",
	"  ELSE IF block -> true or false branch",
	"  ELSE block -> false branch",
	"  BREAK/CONTINUE -> leave the loop / skip the iteration",
	"  FOR loop -> initialization; condition; increment ==> loop body",
	"  WHILE loop -> condition ==> loop body",
	"  DO WHILE loop -> loop body ==> condition",
	"  SWITCH block -> cases ==> default (false)",
	"end legend",
}

// keywords upper-cases the leading control keyword of a statement, first match wins
var keywords = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`^if\b`), "IF"},
	{regexp.MustCompile(`^else\b`), "ELSE"},
	{regexp.MustCompile(`^elseif\b`), "ELSE IF"},
	{regexp.MustCompile(`^for\b`), "FOR"},
	{regexp.MustCompile(`^while\b`), "WHILE"},
	{regexp.MustCompile(`^foreach\b`), "FOREACH"},
	{regexp.MustCompile(`^do-while\b`), "DO-WHILE"},
	{regexp.MustCompile(`^switch\b`), "SWITCH"},
	{regexp.MustCompile(`^break\b`), "BREAK"},
	{regexp.MustCompile(`^continue\b`), "CONTINUE"},
	{regexp.MustCompile(`^case\b`), "CASE"},
}

// Stylize prepares a statement for an action label
func Stylize(stmt string) string {
	stmt = fold(stmt)
	stmt = strings.TrimSpace(strings.TrimRight(stmt, ";"))
	for _, keyword := range keywords {
		if loc := keyword.pattern.FindStringIndex(stmt); loc != nil {
			stmt = keyword.replacement + stmt[loc[1]:]
			break
		}
	}
	return strings.ReplaceAll(stmt, `"`, `\"`)
}

// fold joins multi line text into a single line
func fold(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
}

// leadingWord returns the lower-cased identifier a statement starts with
func leadingWord(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	end := 0
	for end < len(stmt) {
		c := stmt[end]
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			break
		}
		end++
	}
	return strings.ToLower(stmt[:end])
}
