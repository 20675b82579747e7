package latex

import (
	"regexp"
	"strings"
)

// Defaults used when the source declares no title or author.
const (
	DefaultTitle  = "Untitled"
	DefaultAuthor = "Unknown"
)

// Metadata is the book-level information declared in the preamble.
type Metadata struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

var (
	// Commands whose argument never belongs to the visible text.
	droppedCommand = regexp.MustCompile(`\\(?:thanks|footnote|label)\{[^{}]*\}`)
	// Innermost formatting command: \cmd{text} or \cmd[opt]{text}.
	innermostCommand = regexp.MustCompile(`\\[a-zA-Z@]+\*?(?:\[[^\]]*\])?\{([^{}]*)\}`)
	authorSeparator  = regexp.MustCompile(`\s*\\and\b\s*`)
	bareCommand      = regexp.MustCompile(`\\[a-zA-Z@]+\*?`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// ExtractMetadata reads \title{...} and \author{...} from src.
func ExtractMetadata(src string) Metadata {
	meta := Metadata{Title: DefaultTitle, Author: DefaultAuthor}
	events := Scan(src)

	if v, ok := firstArgument(src, events, "title"); ok {
		meta.Title = v
	}
	if v, ok := firstArgument(src, events, "author"); ok {
		meta.Author = v
	}
	return meta
}

// firstArgument returns the stripped first argument of the first \name
// command whose argument is not empty after stripping.
func firstArgument(src string, events []Event, name string) (string, bool) {
	for _, ev := range Commands(events, name) {
		args, _, ok := ReadArgs(src, ev.End, 1)
		if !ok {
			continue
		}
		if text := StripFormatting(args[0].Text); text != "" {
			return text, true
		}
	}
	return "", false
}

// StripFormatting reduces nested formatting commands to their innermost text.
//
//	\textbf{\Large The \emph{Book}} -> The Book
func StripFormatting(s string) string {
	s = droppedCommand.ReplaceAllString(s, "")
	s = authorSeparator.ReplaceAllString(s, ", ")
	for {
		next := innermostCommand.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}
	s = strings.ReplaceAll(s, `\\`, " ")
	s = bareCommand.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "", "~", " ").Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.Trim(s, ", ")
}
