package exiftool

import (
	"regexp"
	"strings"
)

// tagLinePattern matches one line of exiftool -S (very short) output:
// "TagName: value". Compiled once and shared by every call.
var tagLinePattern = regexp.MustCompile(`^([\w-]+)\s*:\s*(.*\S)\s*$`)

// tagCollector accumulates raw tag name/value pairs from compact output.
// Lines that do not look like a tag assignment are skipped.
type tagCollector struct {
	values map[string]string
}

func newTagCollector() *tagCollector {
	return &tagCollector{values: make(map[string]string)}
}

func (c *tagCollector) handle(line string) bool {
	if m := tagLinePattern.FindStringSubmatch(line); m != nil {
		c.values[m[1]] = m[2]
	}
	return true
}

// rawCollector accumulates unparsed output lines verbatim.
type rawCollector struct {
	lines []string
}

func (c *rawCollector) handle(line string) bool {
	c.lines = append(c.lines, line)
	return true
}

func (c *rawCollector) output() string {
	return strings.Join(c.lines, "\n")
}

// discardOutput consumes and drops every line. Used for write operations
// whose output carries no data.
func discardOutput(string) bool {
	return true
}
