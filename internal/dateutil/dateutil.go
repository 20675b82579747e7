// Package dateutil formats the timestamps shown by `quickbook status` using
// token strings such as "DD/MM/YYYY" or a named preset.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength bounds formats read from flags and the environment.
const MaxDateFormatLength = 50

const DefaultDateFormat = "YYYY-MM-DD"

// tokens pairs each format token with its Go layout element. Longer tokens
// come before the shorter ones they start with, so the first match wins.
var tokens = [...][2]string{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DD", "02"},
	{"D", "2"},
	{"HH", "15"},
	{"mm", "04"},
}

// DatePresets names the formats accepted by --date-format besides tokens.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"stamp":    "YYYY-MM-DD HH:mm",
}

// ParseDateFormat translates a token format into a Go time layout.
// Text inside brackets is copied verbatim, so "[Uploaded] YYYY" keeps the
// word. Other characters are literals.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		before, after, found := strings.Cut(rest, "[")
		translate(&b, before)
		if !found {
			break
		}
		literal, tail, closed := strings.Cut(after, "]")
		if !closed {
			at := len(format) - len(after) - 1
			return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, at)
		}
		b.WriteString(literal)
		rest = tail
	}
	return b.String(), nil
}

// translate writes s to b with every token replaced by its layout element.
func translate(b *strings.Builder, s string) {
next:
	for s != "" {
		for _, t := range tokens {
			if strings.HasPrefix(s, t[0]) {
				b.WriteString(t[1])
				s = s[len(t[0]):]
				continue next
			}
		}
		b.WriteByte(s[0])
		s = s[1:]
	}
}

// Layout resolves a preset name (case-insensitive) or a token format. The
// empty string selects DefaultDateFormat.
func Layout(format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// Format renders t with a preset name or token format.
func Format(t time.Time, format string) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
