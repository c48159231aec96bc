package formatter

import (
	"strings"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// Summary counts reports per outcome
type Summary struct {
	Total      int `json:"total"`
	Safe       int `json:"safe"`
	Suspicious int `json:"suspicious"`
	Phishing   int `json:"phishing"`
	Failed     int `json:"failed"`
}

func summarize(reports []*Report) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r.Result == nil {
			s.Failed++
			continue
		}
		switch r.Result.Classification {
		case analysis.ClassificationSafe:
			s.Safe++
		case analysis.ClassificationSuspicious:
			s.Suspicious++
		case analysis.ClassificationPhishing:
			s.Phishing++
		}
	}
	return s
}

// verdictTitle is the headline wording of a classification
func verdictTitle(class analysis.Classification) string {
	switch class {
	case analysis.ClassificationSafe:
		return "SAFE MESSAGE"
	case analysis.ClassificationSuspicious:
		return "SUSPICIOUS - Needs Review"
	case analysis.ClassificationPhishing:
		return "PHISHING DETECTED!"
	default:
		return class.String()
	}
}

// verdictEmoji returns the emoji for a classification, honoring --no-emoji
func verdictEmoji(class analysis.Classification) string {
	switch class {
	case analysis.ClassificationSafe:
		return emoji.GetEmoji("safe")
	case analysis.ClassificationSuspicious:
		return emoji.GetEmoji("suspicious")
	case analysis.ClassificationPhishing:
		return emoji.GetEmoji("phishing")
	default:
		return emoji.GetEmoji("help")
	}
}

// createConfidenceBar creates ASCII confidence bar using go-termfmt
func createConfidenceBar(percent float64) string {
	opts := termfmt.DefaultOptions()
	opts.Emoji = !emoji.IsEmojiDisabled()
	return termfmt.CreateConfidenceBar(percent/100, opts)
}

// singleLine flattens and truncates text for tables
func singleLine(s string, limit int) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)

	if runes := []rune(s); limit > 3 && len(runes) > limit {
		s = string(runes[:limit-3]) + "..."
	}
	return s
}

// errorText is what a failed report shows instead of a verdict
func errorText(r *Report) string {
	if r.Err == nil {
		return ""
	}
	return analysis.UserMessage(r.Err)
}
