package lexer

import "strings"

// Preprocess drops comments and joins lines. A comment starts at `#` and runs to the end of
// the line; the comment and its line break are replaced with a single space, as is every
// other line break.
func Preprocess(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	inComment := false
	for _, c := range src {
		switch {
		case c == '\n':
			inComment = false
			b.WriteByte(' ')
		case inComment:
		case c == '#':
			inComment = true
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
