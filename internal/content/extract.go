package content

// extractObject returns the first balanced top-level JSON object embedded in
// raw text. The model wraps payloads in prose and markdown fences, so the
// scan ignores everything outside the object and is string/escape aware for
// braces inside JSON strings. An opening brace that never balances is
// treated as prose and the scan resumes at the next one.
func extractObject(raw string) (string, bool) {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		if end, ok := scanBalanced(raw, start); ok {
			return raw[start : end+1], true
		}
	}
	return "", false
}

// scanBalanced scans from the opening brace at start and returns the index
// of the matching closing brace.
func scanBalanced(raw string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		ch := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
