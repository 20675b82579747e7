package latex

// Arg is a command argument. Text excludes the delimiters; Start and End
// cover the delimiters.
type Arg struct {
	Text     string
	Optional bool
	Start    int
	End      int
}

// ReadArgs reads n mandatory {…} arguments starting at pos. Optional […]
// groups and whitespace between arguments are skipped. Returns the
// arguments, the offset just past the last one, and false when fewer than
// n arguments follow or a group is unterminated.
func ReadArgs(src string, pos, n int) ([]Arg, int, bool) {
	args := make([]Arg, 0, n)

	for len(args) < n {
		pos = skipWhitespace(src, pos)
		if pos >= len(src) {
			return nil, pos, false
		}

		switch src[pos] {
		case '[':
			end, ok := matchGroup(src, pos, '[', ']')
			if !ok {
				return nil, pos, false
			}
			pos = end
		case '{':
			end, ok := matchGroup(src, pos, '{', '}')
			if !ok {
				return nil, pos, false
			}
			args = append(args, Arg{Text: src[pos+1 : end-1], Start: pos, End: end})
			pos = end
		default:
			return nil, pos, false
		}
	}

	return args, pos, true
}

// ReadOptional reads a single […] group at pos (after whitespace), if any.
func ReadOptional(src string, pos int) (Arg, bool) {
	pos = skipWhitespace(src, pos)
	if pos >= len(src) || src[pos] != '[' {
		return Arg{}, false
	}
	end, ok := matchGroup(src, pos, '[', ']')
	if !ok {
		return Arg{}, false
	}
	return Arg{Text: src[pos+1 : end-1], Optional: true, Start: pos, End: end}, true
}

// matchGroup returns the offset just past the delimiter closing the group
// opened at pos. Braces nest inside bracket groups; escaped characters are
// skipped.
func matchGroup(src string, pos int, open, close byte) (int, bool) {
	depth := 0
	braces := 0

	for i := pos; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\':
			i++
		case open == '[' && c == '{':
			braces++
		case open == '[' && c == '}':
			braces--
		case c == open:
			depth++
		case c == close && braces == 0:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

func skipWhitespace(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
