// SPDX-License-Identifier: MPL-2.0

package task

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Render returns a copy-pasteable shell representation of the command for
// dry-run output and verbose logging. Each word is quoted per POSIX shell
// rules; words that cannot be represented (e.g. containing NUL) fall back
// to the raw string.
func Render(c Command) string {
	var sb strings.Builder
	sb.WriteString(quoteWord(c.Name))
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(quoteWord(arg))
	}
	return sb.String()
}

// RenderAll renders each command on its own line.
func RenderAll(cmds []Command) string {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, Render(c))
	}
	return strings.Join(lines, "\n")
}

func quoteWord(w string) string {
	quoted, err := syntax.Quote(w, syntax.LangPOSIX)
	if err != nil {
		return w
	}
	return quoted
}
