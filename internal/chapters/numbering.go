package chapters

import (
	"regexp"

	"github.com/alnah/go-quickbook/internal/roman"
)

// BackMatterBase is the first number given to back matter.
const BackMatterBase = 90

var (
	chapterKeyword = regexp.MustCompile(`(?i)\bchapter\b`)
	chapterRoman   = regexp.MustCompile(`(?i)\bchapter\s+([ivxlcdm]+)\b`)
	leadingRoman   = regexp.MustCompile(`^([IVXLCDM]+)\.(?:\s|$)`)
	frontMatter    = regexp.MustCompile(`(?i)\b(preface|prologue|introduction|foreword)\b`)
	backMatter     = regexp.MustCompile(`(?i)\b(epilogue|appendix|index|bibliography)\b`)
)

// numberer assigns display numbers to chapter titles in document order.
type numberer struct {
	main  int // highest main chapter number so far
	front int // front matter seen
	back  int // back matter seen
}

// next classifies title and returns its number.
func (n *numberer) next(title string) int {
	if chapterKeyword.MatchString(title) || leadingRoman.MatchString(title) {
		if v, ok := embeddedRoman(title); ok {
			n.main = max(n.main, v)
			return v
		}
		return n.nextMain()
	}

	if frontMatter.MatchString(title) {
		v := n.front
		n.front++
		return v
	}

	if backMatter.MatchString(title) {
		v := BackMatterBase + n.back
		n.back++
		return v
	}

	return n.nextMain()
}

func (n *numberer) nextMain() int {
	n.main++
	return n.main
}

// embeddedRoman extracts the numeral of "CHAPTER IV ..." or "IV. ...".
func embeddedRoman(title string) (int, bool) {
	if m := chapterRoman.FindStringSubmatch(title); m != nil {
		if v, ok := roman.ToInt(m[1]); ok {
			return v, true
		}
	}
	if m := leadingRoman.FindStringSubmatch(title); m != nil {
		return roman.ToInt(m[1])
	}
	return 0, false
}
