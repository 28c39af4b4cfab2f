// Package prompt renders editor content into natural-language task
// descriptions for the downstream agent. Both functions are pure: identical
// inputs always produce byte-identical output.
package prompt

import (
	"fmt"
	"strings"
)

const (
	fileInstruction      = "Please ask the user what they would like to do with this file."
	selectionInstruction = "Please ask the user what they would like to do with this selection."
)

// FormatFileContext describes a whole file. An empty path means an untitled
// buffer that has never been saved.
func FormatFileContext(path, content, language string) string {
	var b strings.Builder
	if path == "" {
		b.WriteString("The user has an unsaved buffer open in the editor.")
	} else {
		fmt.Fprintf(&b, "The user has the file `%s` open in the editor.", path)
	}
	b.WriteString("\n\nHere is the full content:\n\n")
	writeFence(&b, language, content)
	b.WriteString("\n\n")
	b.WriteString(fileInstruction)
	return b.String()
}

// FormatSelectionContext describes a sub-range of a file. Line numbers are
// 1-based inclusive; a single-line selection reads "line N", a multi-line
// one "lines A-B".
func FormatSelectionContext(path, content string, startLine, endLine int, language string) string {
	lines := fmt.Sprintf("line %d", startLine)
	if startLine != endLine {
		lines = fmt.Sprintf("lines %d-%d", startLine, endLine)
	}

	var b strings.Builder
	if path == "" {
		fmt.Fprintf(&b, "The user has selected %s of an unsaved buffer in the editor.", lines)
	} else {
		fmt.Fprintf(&b, "The user has selected %s of `%s` in the editor.", lines, path)
	}
	b.WriteString("\n\n")
	writeFence(&b, language, content)
	b.WriteString("\n\n")
	b.WriteString(selectionInstruction)
	return b.String()
}

func writeFence(b *strings.Builder, language, content string) {
	b.WriteString("```")
	b.WriteString(language)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n```")
}
