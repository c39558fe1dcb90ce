// Package stacktrace trims runtime/debug stacks down to this module's frames.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

const marker = "/internal/"

// InternalPaths returns "internal/<pkg>/<file>.go:<line>" for every frame of
// a debug.Stack dump that points into an internal package. Frames from the
// standard library and third-party modules are dropped.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		// file lines are tab indented: "\t/abs/path/file.go:42 +0x1d"
		line := sc.Text()
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		loc, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		idx := strings.Index(loc, marker)
		if idx == -1 || !strings.Contains(loc[idx:], ".go:") {
			continue
		}

		paths = append(paths, loc[idx+1:])
	}

	return paths
}
