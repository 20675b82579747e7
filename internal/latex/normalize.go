package latex

import (
	"regexp"
)

// Precompiled patterns for the normalization rules.
var (
	// Custom intertext macro block, from its marker comment to \makeatother.
	intertextBlock = regexp.MustCompile(`(?ms)^%[ \t]*quickbook: intertext macros[^\n]*\n.*?^\\makeatother[^\n]*(?:\n|$)`)

	// breqn environments, with an optional [key=value] argument on the opener.
	breqnBegin = regexp.MustCompile(`\\begin\{(dmath|dgroup)(\*?)\}(?:[ \t]*\[[^\]\n]*\])?`)
	breqnEnd   = regexp.MustCompile(`\\end\{(dmath|dgroup)(\*?)\}`)

	// Custom text commands inside math.
	customText = regexp.MustCompile(`\\(?:eqtext|mtext)\{`)

	// breqn package and its configuration, only when not already commented.
	breqnPackage = regexp.MustCompile(`(?m)^([ \t]*)(\\usepackage(?:\[[^\]\n]*\])?\{breqn\}[^\n]*)$`)
	breqnKeys    = regexp.MustCompile(`(?m)^([ \t]*)(\\setkeys\{breqn\}[^\n]*)$`)

	// alignat with its column count.
	alignatBegin = regexp.MustCompile(`\\begin\{alignat(\*?)\}(?:[ \t]*\{[^}\n]*\})?`)
	alignatEnd   = regexp.MustCompile(`\\end\{alignat(\*?)\}`)

	nonstandardTag = regexp.MustCompile(`\\(?:begin|end)\{(?:dmath|dgroup|alignat)\*?\}`)
)

// intertextAliases replaces the custom intertext macro block.
const intertextAliases = "\\let\\Intertext\\intertext\n\\let\\Shortintertext\\intertext\n"

// breqnTargets maps breqn environments to their amsmath equivalents.
var breqnTargets = map[string]string{
	"dmath":  "equation",
	"dgroup": "align",
}

// Normalize rewrites known nonstandard constructs into the subset the
// external renderer understands. It is idempotent.
func Normalize(src string) string {
	src = intertextBlock.ReplaceAllLiteralString(src, intertextAliases)
	src = rewriteBreqn(src)
	src = customText.ReplaceAllLiteralString(src, `\text{`)
	src = breqnPackage.ReplaceAllString(src, "${1}% ${2}")
	src = breqnKeys.ReplaceAllString(src, "${1}% ${2}")
	src = alignatBegin.ReplaceAllString(src, `\begin{align${1}}`)
	src = alignatEnd.ReplaceAllString(src, `\end{align${1}}`)
	return src
}

// RemainingNonstandard returns every nonstandard environment tag still
// present in src, in order of appearance.
func RemainingNonstandard(src string) []string {
	return nonstandardTag.FindAllString(src, -1)
}

func rewriteBreqn(src string) string {
	src = breqnBegin.ReplaceAllStringFunc(src, func(m string) string {
		sub := breqnBegin.FindStringSubmatch(m)
		return `\begin{` + breqnTargets[sub[1]] + sub[2] + `}`
	})
	return breqnEnd.ReplaceAllStringFunc(src, func(m string) string {
		sub := breqnEnd.FindStringSubmatch(m)
		return `\end{` + breqnTargets[sub[1]] + sub[2] + `}`
	})
}
