package analysis

import (
	"math"
	"strings"
	"time"
)

// labelTable is the single place where provider vocabulary is translated into
// canonical classifications. Keys are upper-case with spaces and hyphens
// folded to underscores.
var labelTable = map[string]Classification{
	// safe
	"SAFE":         ClassificationSafe,
	"LEGIT":        ClassificationSafe,
	"LEGITIMATE":   ClassificationSafe,
	"HAM":          ClassificationSafe,
	"BENIGN":       ClassificationSafe,
	"CLEAN":        ClassificationSafe,
	"NOT_PHISHING": ClassificationSafe,
	"NOT_SCAM":     ClassificationSafe,
	"NORMAL":       ClassificationSafe,
	"LABEL_0":      ClassificationSafe,

	// suspicious
	"SUSPICIOUS":   ClassificationSuspicious,
	"SUSPECT":      ClassificationSuspicious,
	"NEEDS_REVIEW": ClassificationSuspicious,
	"UNCERTAIN":    ClassificationSuspicious,
	"WARNING":      ClassificationSuspicious,

	// phishing
	"PHISHING":  ClassificationPhishing,
	"PHISH":     ClassificationPhishing,
	"SCAM":      ClassificationPhishing,
	"SPAM":      ClassificationPhishing,
	"SMISHING":  ClassificationPhishing,
	"FRAUD":     ClassificationPhishing,
	"MALICIOUS": ClassificationPhishing,
	"LABEL_1":   ClassificationPhishing,
}

// labelPrefixes catch decorated labels such as "PHISHING_HIGH" or
// "SUSPICIOUS - needs review". Order matters: NOT_ forms must be matched
// exactly before this list is consulted.
var labelPrefixes = []struct {
	prefix string
	class  Classification
}{
	{"PHISHING", ClassificationPhishing},
	{"SCAM", ClassificationPhishing},
	{"SUSPICIOUS", ClassificationSuspicious},
	{"SAFE", ClassificationSafe},
}

// MapLabel translates a provider label into a canonical classification
func MapLabel(label string) (Classification, bool) {
	key := foldLabel(label)
	if key == "" {
		return "", false
	}

	if class, ok := labelTable[key]; ok {
		return class, true
	}

	for _, p := range labelPrefixes {
		if strings.HasPrefix(key, p.prefix) {
			return p.class, true
		}
	}

	return "", false
}

func foldLabel(label string) string {
	key := strings.ToUpper(strings.TrimSpace(label))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	return strings.Trim(key, "_")
}

// ScaleConfidence converts a provider confidence into a percentage in [0,100]
func ScaleConfidence(value float64, scale ConfidenceScale) (float64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, false
	}

	switch scale {
	case ScaleFraction:
		if value > 1 {
			return 0, false
		}
		value *= 100
	case ScalePercent:
		// already a percentage
	default:
		if value <= 1 {
			value *= 100
		}
	}

	if value > 100 {
		return 0, false
	}

	return value, true
}

// Normalize turns a raw verdict into a Result stamped with receivedAt
func Normalize(provider string, v *Verdict, receivedAt time.Time) (*Result, error) {
	if v == nil {
		return nil, NewMalformedResponseError(provider, "", "empty verdict", nil)
	}

	class, ok := MapLabel(v.Label)
	if !ok {
		return nil, NewMalformedResponseError(provider, "classification", "unrecognized label '"+v.Label+"'", nil)
	}

	confidence, ok := ScaleConfidence(v.Confidence, v.Scale)
	if !ok {
		return nil, NewMalformedResponseError(provider, "confidence", "confidence out of range", nil)
	}

	return &Result{
		Classification: class,
		Confidence:     confidence,
		Details:        strings.TrimSpace(v.Details),
		Timestamp:      receivedAt,
		Provider:       provider,
	}, nil
}
