package markdown

import (
	"bytes"
	"strings"
)

// referenceDefinitions scans body line by line for "[label]: dest" outside
// fenced and indented code blocks. Footnote definitions are skipped.
func referenceDefinitions(body []byte) []Destination {
	out := make([]Destination, 0)
	inCodeBlock := false
	activeFence := ""

	offset := 0
	for len(body[offset:]) > 0 {
		end := bytes.IndexByte(body[offset:], '\n')
		if end < 0 {
			end = len(body) - offset
		}
		line := string(body[offset : offset+end])
		lineStart := offset
		offset += end
		if offset < len(body) {
			offset++
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "```")
			continue
		}
		if strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "~~~")
			continue
		}
		if inCodeBlock || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		if start, value, ok := parseReferenceDefinition(line); ok {
			out = append(out, Destination{
				Kind:  LinkKindReferenceDefinition,
				Value: value,
				Start: lineStart + start,
				End:   lineStart + start + len(value),
			})
		}
	}
	return out
}

// parseReferenceDefinition returns the offset of the destination within line.
func parseReferenceDefinition(line string) (int, string, bool) {
	lead := len(line) - len(strings.TrimLeft(line, " "))
	if lead > 3 || !strings.HasPrefix(line[lead:], "[") || strings.HasPrefix(line[lead:], "[^") {
		return 0, "", false
	}
	closeIdx := strings.Index(line[lead:], "]:")
	if closeIdx < 0 {
		return 0, "", false
	}
	i := lead + closeIdx + 2
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i < len(line) && line[i] == '<' {
		i++
		end := strings.IndexByte(line[i:], '>')
		if end <= 0 {
			return 0, "", false
		}
		return i, line[i : i+end], true
	}
	end := strings.IndexAny(line[i:], " \t\r")
	if end < 0 {
		end = len(line) - i
	}
	if end == 0 {
		return 0, "", false
	}
	return i, line[i : i+end], true
}

func toggleFencedBlock(inCodeBlock bool, activeFence string, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}
