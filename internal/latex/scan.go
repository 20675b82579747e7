package latex

import (
	"sort"
	"strings"
)

// EventKind identifies a token produced by Scan.
type EventKind int

const (
	EventCommand   EventKind = iota // \name or \name*
	EventBegin                      // \begin{env}
	EventEnd                        // \end{env}
	EventMathOpen                   // \[
	EventMathClose                  // \]
)

// DisplayMath is the environment name reported for \[ ... \] blocks.
const DisplayMath = `\[`

// Event is a single structural token in LaTeX source.
// Start and End are byte offsets; End points just past the token.
type Event struct {
	Kind  EventKind
	Name  string
	Star  bool
	Start int
	End   int
}

// Environment is a matched begin/end pair.
type Environment struct {
	Name      string
	Start     int // offset of \begin{...} or \[
	End       int // offset just past \end{...} or \]
	BodyStart int
	BodyEnd   int
	Depth     int
}

// opaqueEnvironments hold content the tokenizer must not look into.
var opaqueEnvironments = map[string]bool{
	"verbatim":   true,
	"verbatim*":  true,
	"lstlisting": true,
	"minted":     true,
	"comment":    true,
}

// Scan tokenizes src in a single pass. Comments are skipped and the bodies
// of verbatim-like environments are treated as opaque text.
func Scan(src string) []Event {
	var events []Event

	i := 0
	for i < len(src) {
		switch src[i] {
		case '%':
			i = skipLine(src, i)
		case '\\':
			ev, next := scanBackslash(src, i)
			if ev == nil {
				i = next
				continue
			}
			events = append(events, *ev)
			if ev.Kind == EventBegin && opaqueEnvironments[ev.Name] {
				closing := `\end{` + ev.Name + `}`
				idx := strings.Index(src[next:], closing)
				if idx < 0 {
					return events
				}
				endStart := next + idx
				events = append(events, Event{
					Kind:  EventEnd,
					Name:  ev.Name,
					Start: endStart,
					End:   endStart + len(closing),
				})
				next = endStart + len(closing)
			}
			i = next
		default:
			i++
		}
	}

	return events
}

// scanBackslash reads the token starting at the backslash at offset i.
// Returns nil for escaped characters such as \% or \\.
func scanBackslash(src string, i int) (*Event, int) {
	if i+1 >= len(src) {
		return nil, i + 1
	}

	c := src[i+1]
	switch {
	case c == '[':
		return &Event{Kind: EventMathOpen, Name: DisplayMath, Start: i, End: i + 2}, i + 2
	case c == ']':
		return &Event{Kind: EventMathClose, Name: DisplayMath, Start: i, End: i + 2}, i + 2
	case !isLetter(c):
		return nil, i + 2
	}

	j := i + 1
	for j < len(src) && isLetter(src[j]) {
		j++
	}
	name := src[i+1 : j]

	if name == "begin" || name == "end" {
		if ev, next, ok := scanEnvironmentTag(src, i, j, name); ok {
			return ev, next
		}
		return &Event{Kind: EventCommand, Name: name, Start: i, End: j}, j
	}

	star := j < len(src) && src[j] == '*'
	if star {
		j++
	}
	return &Event{Kind: EventCommand, Name: name, Star: star, Start: i, End: j}, j
}

// scanEnvironmentTag reads the {name} following \begin or \end.
func scanEnvironmentTag(src string, start, pos int, tag string) (*Event, int, bool) {
	k := skipSpaces(src, pos)
	if k >= len(src) || src[k] != '{' {
		return nil, 0, false
	}
	closeIdx := strings.IndexAny(src[k+1:], "}\n")
	if closeIdx < 0 || src[k+1+closeIdx] != '}' {
		return nil, 0, false
	}

	name := strings.TrimSpace(src[k+1 : k+1+closeIdx])
	if name == "" {
		return nil, 0, false
	}

	kind := EventBegin
	if tag == "end" {
		kind = EventEnd
	}
	end := k + 1 + closeIdx + 1
	return &Event{Kind: kind, Name: name, Start: start, End: end}, end, true
}

// Environments pairs begin/end events using a nesting stack. A closing tag
// pops back to its matching opener, dropping any unterminated blocks opened
// in between. Stray closing tags and blocks still open at the end of input
// are ignored. The result is ordered by Start.
func Environments(events []Event) []Environment {
	type opener struct {
		name string
		ev   Event
	}

	var stack []opener
	var envs []Environment

	for _, ev := range events {
		switch ev.Kind {
		case EventBegin, EventMathOpen:
			stack = append(stack, opener{name: ev.Name, ev: ev})
		case EventEnd, EventMathClose:
			idx := -1
			for k := len(stack) - 1; k >= 0; k-- {
				if stack[k].name == ev.Name {
					idx = k
					break
				}
			}
			if idx < 0 {
				continue
			}
			o := stack[idx]
			envs = append(envs, Environment{
				Name:      o.name,
				Start:     o.ev.Start,
				End:       ev.End,
				BodyStart: o.ev.End,
				BodyEnd:   ev.Start,
				Depth:     idx,
			})
			stack = stack[:idx]
		}
	}

	sort.SliceStable(envs, func(i, j int) bool {
		return envs[i].Start < envs[j].Start
	})
	return envs
}

// Commands returns the command events whose name is in names, in source order.
func Commands(events []Event, names ...string) []Event {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []Event
	for _, ev := range events {
		if ev.Kind == EventCommand && want[ev.Name] {
			out = append(out, ev)
		}
	}
	return out
}

func skipLine(src string, i int) int {
	idx := strings.IndexByte(src[i:], '\n')
	if idx < 0 {
		return len(src)
	}
	return i + idx + 1
}

func skipSpaces(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '@'
}
