package lycerrors

import (
	"fmt"
	"strings"
)

// FormatWithSource renders err with a source-line and caret indicator when
// err carries a token offset. Errors with no offset (NoOffset) render as a
// bare message.
func FormatWithSource(err error, src string) string {
	offset := Offset(err)
	if offset == NoOffset {
		return err.Error()
	}

	line, col, lineText := lineAndColumn(src, offset)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error at line %d:%d\n", line, col)
	if lineText != "" {
		lineNumStr := fmt.Sprintf("%4d | ", line)
		sb.WriteString(lineNumStr)
		sb.WriteString(lineText)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		sb.WriteString("^\n")
	}
	sb.WriteString(err.Error())
	return sb.String()
}

// lineAndColumn converts a byte offset into 1-based line/column numbers and
// returns the text of that source line.
func lineAndColumn(src string, offset int) (line, col int, lineText string) {
	if offset < 0 || offset > len(src) {
		offset = len(src)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1

	lineEnd := len(src)
	if idx := strings.IndexByte(src[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	lineText = src[lineStart:lineEnd]
	return
}
