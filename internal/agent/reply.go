package agent

import (
	"fmt"
	"strings"
	"unicode"

	"tipline/internal/llm"
	"tipline/internal/ops"
)

// degenerate reports whether model output is unusable as a reply: empty, too
// short to carry meaning, or containing no letters or digits at all.
func degenerate(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	if len(trimmed) < 10 {
		return true
	}
	return !strings.ContainsFunc(trimmed, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

// synthesizeReply builds a deterministic reply from the operation results when
// the model's narration is unusable. Pending questions outrank everything:
// a confirmation or clarification prompt must reach the user verbatim.
func synthesizeReply(calls []llm.ToolCall, results []*ops.Result) string {
	for _, res := range results {
		if res.NeedsConfirmation && res.Message != "" {
			return res.Message
		}
	}
	for _, res := range results {
		if res.NeedsClarification && res.Message != "" {
			return res.Message
		}
	}

	var parts []string
	for _, res := range results {
		switch {
		case res.Success && res.Message != "":
			parts = append(parts, res.Message)
		case !res.Success && res.Error != "":
			parts = append(parts, "Something went wrong: "+res.Error)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	for i, res := range results {
		if res.Success && i < len(calls) {
			return fmt.Sprintf("%s completed.", humanizeOp(calls[i].Name))
		}
	}
	return "Done! Anything else you'd like to log?"
}

func humanizeOp(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return "Operation"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
