package chunker

import (
	"regexp"
	"sort"

	"github.com/alnah/go-quickbook/internal/latex"
	"github.com/alnah/go-quickbook/internal/roman"
)

// ChapterPosition is a chapter declaration found in the source.
// Declared is the number the source suggests; Number is the sequential
// number chunks are attributed to.
type ChapterPosition struct {
	Title    string
	Position int
	Declared int
	Number   int
}

// chapterShape describes one supported chapter command.
type chapterShape struct {
	command  string
	star     bool
	args     int
	romanArg int // index of the roman numeral argument, -1 if none
	titleArg int
}

// chapterShapes lists the chapter declarations recognized in the source:
//
//	\chapter{Title}
//	\chapter*{Title}
//	\numberedchapter{IV}{Title}
//	\bookchapter{Running head}{IV}{Title}
var chapterShapes = []chapterShape{
	{command: "chapter", args: 1, romanArg: -1, titleArg: 0},
	{command: "chapter", star: true, args: 1, romanArg: -1, titleArg: 0},
	{command: "numberedchapter", args: 2, romanArg: 0, titleArg: 1},
	{command: "bookchapter", args: 3, romanArg: 1, titleArg: 2},
}

// chapterCommands are the command names that start a chapter.
var chapterCommands = []string{"chapter", "numberedchapter", "bookchapter"}

// romanPrefix matches a title starting with "IV. ".
var romanPrefix = regexp.MustCompile(`^([IVXLCDM]+)\.(?:\s|$)`)

// ChapterIndex maps source offsets to chapter numbers.
type ChapterIndex struct {
	entries []ChapterPosition
}

// BuildIndex collects chapter declarations from tokenized source.
func BuildIndex(src string, events []latex.Event) *ChapterIndex {
	var entries []ChapterPosition

	for _, ev := range latex.Commands(events, chapterCommands...) {
		shape, ok := shapeFor(ev)
		if !ok {
			continue
		}
		args, _, ok := latex.ReadArgs(src, ev.End, shape.args)
		if !ok {
			continue
		}

		title := latex.StripFormatting(args[shape.titleArg].Text)
		declared := 0
		if shape.romanArg >= 0 {
			declared, _ = roman.ToInt(latex.StripFormatting(args[shape.romanArg].Text))
		}
		if declared == 0 {
			if m := romanPrefix.FindStringSubmatch(title); m != nil {
				declared, _ = roman.ToInt(m[1])
			}
		}

		entries = append(entries, ChapterPosition{
			Title:    title,
			Position: ev.Start,
			Declared: declared,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})

	// Chunks are attributed to chapters in reading order, so numbering is
	// always sequential from 1. Declared keeps what the source said.
	for i := range entries {
		if entries[i].Declared == 0 {
			entries[i].Declared = i + 1
		}
		entries[i].Number = i + 1
	}

	return &ChapterIndex{entries: entries}
}

func shapeFor(ev latex.Event) (chapterShape, bool) {
	for _, s := range chapterShapes {
		if s.command == ev.Name && s.star == ev.Star {
			return s, true
		}
	}
	return chapterShape{}, false
}

// Entries returns the chapter positions in source order.
func (x *ChapterIndex) Entries() []ChapterPosition {
	out := make([]ChapterPosition, len(x.entries))
	copy(out, x.entries)
	return out
}

// Len returns the number of chapters found.
func (x *ChapterIndex) Len() int {
	return len(x.entries)
}

// Before reports whether offset precedes the first chapter declaration.
// A source without chapters has nothing to precede.
func (x *ChapterIndex) Before(offset int) bool {
	return len(x.entries) > 0 && offset < x.entries[0].Position
}

// NumberAt returns the number of the nearest chapter declared at or before
// offset, or 0 if none is.
func (x *ChapterIndex) NumberAt(offset int) int {
	i := sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].Position > offset
	})
	if i == 0 {
		return 0
	}
	return x.entries[i-1].Number
}
