package detect

import (
	"strings"
	"unicode"
)

// ParseLine extracts an ingredient name from one line of model output.
// It returns "" for blank lines and conversational preamble.
func ParseLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	// Skip common headers or non-item lines
	if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "I see") || strings.HasPrefix(line, "Based on") {
		return ""
	}
	if strings.HasSuffix(line, ":") {
		return ""
	}

	// Strip list markers: "- egg", "* egg", "• egg", "1. egg", "2) egg"
	line = strings.TrimLeft(line, "-*• \t")
	line = trimListNumber(line)

	// Models sometimes answer in a "name | quantity" table layout.
	if idx := strings.IndexByte(line, '|'); idx >= 0 {
		line = line[:idx]
	}

	return strings.ToLower(strings.TrimSpace(line))
}

// trimListNumber removes a leading "3." or "12)" marker. Digits not followed
// by '.' or ')' are part of the name ("7up", "3 eggs").
func trimListNumber(line string) string {
	i := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 || (line[i] != '.' && line[i] != ')') {
		return line
	}
	return strings.TrimLeft(line[i+1:], " \t")
}

// ParseResponse turns a one-ingredient-per-line model response into a Result.
// Each parsed line becomes one box; repeated names share a class index.
func ParseResponse(raw string) *Result {
	res := &Result{Boxes: []Box{}, Names: map[int]string{}}
	classes := make(map[string]int)

	for _, line := range strings.Split(raw, "\n") {
		name := ParseLine(line)
		if name == "" {
			continue
		}
		class, ok := classes[name]
		if !ok {
			class = len(classes)
			classes[name] = class
			res.Names[class] = name
		}
		res.Boxes = append(res.Boxes, Box{Class: class, Confidence: 1})
	}

	return res
}
