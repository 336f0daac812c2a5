package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// arrayPattern matches the first top-level bracketed array in model
// output, greedily and across newlines.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// labelPattern strips everything up to and including the first colon,
// half-width or full-width, from a trigger line.
var labelPattern = regexp.MustCompile(`^.*?[:：]`)

// ParseDetections extracts a detection list from raw model output.
// It first tries to deserialize the bracketed-array portion as JSON,
// keeping entries with both a term and an explanation. When no array is
// found or deserialization fails, it falls back to line-based heuristic
// parsing. A zero-entry result is a valid "nothing detected" outcome,
// not an error.
func ParseDetections(raw string) []Detection {
	if match := arrayPattern.FindString(raw); match != "" {
		var entries []Detection
		if err := json.Unmarshal([]byte(match), &entries); err == nil {
			results := make([]Detection, 0, len(entries))
			for _, entry := range entries {
				if entry.Term != "" && entry.Explanation != "" {
					results = append(results, entry)
				}
			}
			return results
		}
	}

	return parseDetectionLines(raw)
}

// parseDetectionLines is the last-resort parser for non-JSON model
// output. A line containing "梗", "meme", or "term" starts a new
// candidate; its term is the line with the leading label (up to the
// first colon) removed; following non-empty lines accumulate into the
// explanation, space-joined. The trigger tokens and colon variants are
// load-bearing, extend them only together with their tests.
func parseDetectionLines(raw string) []Detection {
	results := []Detection{}

	var term, explanation string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.Contains(line, "梗") || strings.Contains(line, "meme") || strings.Contains(line, "term") {
			if term != "" && explanation != "" {
				results = append(results, Detection{
					Term:        term,
					Explanation: strings.TrimSpace(explanation),
				})
			}
			term = strings.TrimSpace(labelPattern.ReplaceAllString(line, ""))
			explanation = ""
			continue
		}

		if term != "" {
			explanation += trimmed + " "
		}
	}

	if term != "" && explanation != "" {
		results = append(results, Detection{
			Term:        term,
			Explanation: strings.TrimSpace(explanation),
		})
	}

	return results
}
