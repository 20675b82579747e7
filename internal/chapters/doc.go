// Package chapters finds chapter starts in rendered book HTML and cuts the
// document into one standalone page per chapter.
//
// Detection works on markers (by default every <section> opening tag). The
// text following a marker, up to the next marker, is reduced to lines and
// matched against a fixed list of heading patterns:
//
//	CHAPTER <roman>
//	PREFACE
//	PROLOGUE
//	EPILOGUE
//	INTRODUCTION
//	APPENDIX
//
// The first pattern matching any line wins. Markers with no matching line
// are not chapter starts.
//
// Numbering keeps three independent counters. Chapters carrying a roman
// numeral use its value; front matter counts 0, 1, 2...; back matter counts
// from 90. Main chapter numbers never decrease in document order.
package chapters
