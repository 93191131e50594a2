package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RepairError reports oracle output that could not be turned into a JSON object
type RepairError struct {
	Message string
	Output  string
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("repair error: %s", e.Message)
}

// CleanJSONBlock removes a markdown code fence around JSON, wherever the fence starts.
// Text without a fence is returned trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}
	body := text[start+3:]

	// Skip a language identifier on the fence line
	if idx := strings.Index(body, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(body[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			body = body[idx+1:]
		}
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// RepairJSON turns raw oracle output into a syntactically valid JSON object. It strips code
// fences and surrounding prose, keeps the first balanced object, closes strings and brackets
// left open by truncation and drops trailing commas.
func RepairJSON(raw string) (string, error) {
	text := CleanJSONBlock(raw)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &RepairError{Message: "no JSON object in output", Output: raw}
	}

	candidate := closeTruncated(firstObject(text[start:]))
	candidate = stripTrailingCommas(candidate)

	if !json.Valid([]byte(candidate)) {
		return "", &RepairError{Message: "output is not valid JSON after repair", Output: raw}
	}
	return candidate, nil
}

// firstObject returns text up to the end of the first balanced value, or all of text when
// the value never closes
func firstObject(text string) string {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return text
}

// closeTruncated appends whatever closing quotes and brackets an unterminated value needs
func closeTruncated(text string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 && !inString {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	if inString {
		if escaped {
			// Drop the dangling backslash
			trimmed := sb.String()
			sb.Reset()
			sb.WriteString(trimmed[:len(trimmed)-1])
		}
		sb.WriteByte('"')
	}

	out := strings.TrimRight(sb.String(), " \t\r\n")
	switch {
	case strings.HasSuffix(out, ","):
		out = out[:len(out)-1]
	case strings.HasSuffix(out, ":"):
		out += "null"
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out += string(stack[i])
	}
	return out
}

// stripTrailingCommas removes commas that directly precede a closing bracket
func stripTrailingCommas(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			sb.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
		}
		if c == ',' {
			j := i + 1
			for j < len(text) && strings.IndexByte(" \t\r\n", text[j]) >= 0 {
				j++
			}
			if j < len(text) && (text[j] == '}' || text[j] == ']') {
				continue
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
