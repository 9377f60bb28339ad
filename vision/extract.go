package vision

import "fmt"

// ExtractJSON pulls the first balanced top-level JSON object out of a
// model response, tolerating prose the model wrote before or after it
// ("Here's my analysis: {...}"). It tracks quote state so braces
// inside string values don't throw off the balance count.
func ExtractJSON(response string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range response {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return response[start : i+1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("vision: no balanced JSON object found in response")
}
