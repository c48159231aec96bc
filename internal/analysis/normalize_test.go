package analysis

import (
	"math"
	"testing"
	"time"
)

func TestMapLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Classification
		ok    bool
	}{
		{"SAFE", ClassificationSafe, true},
		{"safe", ClassificationSafe, true},
		{" Legitimate ", ClassificationSafe, true},
		{"LABEL_0", ClassificationSafe, true},
		{"not phishing", ClassificationSafe, true},
		{"not-scam", ClassificationSafe, true},
		{"SUSPICIOUS", ClassificationSuspicious, true},
		{"needs review", ClassificationSuspicious, true},
		{"SUSPICIOUS - Needs Review", ClassificationSuspicious, true},
		{"PHISHING", ClassificationPhishing, true},
		{"SCAM", ClassificationPhishing, true},
		{"spam", ClassificationPhishing, true},
		{"LABEL_1", ClassificationPhishing, true},
		{"PHISHING_HIGH", ClassificationPhishing, true},
		{"", "", false},
		{"banana", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := MapLabel(tt.label)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MapLabel(%q) = (%q, %v), want (%q, %v)", tt.label, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestScaleConfidence(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale ConfidenceScale
		want  float64
		ok    bool
	}{
		{"auto fraction", 0.92, ScaleAuto, 92, true},
		{"auto percent", 92, ScaleAuto, 92, true},
		{"auto zero", 0, ScaleAuto, 0, true},
		{"auto one is a fraction", 1, ScaleAuto, 100, true},
		{"fraction", 0.5, ScaleFraction, 50, true},
		{"fraction too large", 1.5, ScaleFraction, 0, false},
		{"percent small stays", 0.5, ScalePercent, 0.5, true},
		{"percent max", 100, ScalePercent, 100, true},
		{"over 100", 101, ScaleAuto, 0, false},
		{"negative", -1, ScaleAuto, 0, false},
		{"nan", math.NaN(), ScaleAuto, 0, false},
		{"inf", math.Inf(1), ScalePercent, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScaleConfidence(tt.value, tt.scale)
			if ok != tt.ok {
				t.Fatalf("ScaleConfidence(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScaleConfidence(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	result, err := Normalize("flask", &Verdict{Label: "SCAM", Confidence: 0.873, Scale: ScaleFraction, Details: "  check sender  "}, at)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if result.Classification != ClassificationPhishing {
		t.Errorf("Expected PHISHING, got %s", result.Classification)
	}
	if math.Abs(result.Confidence-87.3) > 1e-9 {
		t.Errorf("Expected confidence 87.3, got %v", result.Confidence)
	}
	if result.Details != "check sender" {
		t.Errorf("Expected trimmed details, got %q", result.Details)
	}
	if !result.Timestamp.Equal(at) {
		t.Errorf("Expected timestamp %v, got %v", at, result.Timestamp)
	}
	if result.Provider != "flask" {
		t.Errorf("Expected provider flask, got %s", result.Provider)
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		verdict *Verdict
		field   string
	}{
		{"nil verdict", nil, ""},
		{"unknown label", &Verdict{Label: "MAYBE", Confidence: 50}, "classification"},
		{"bad confidence", &Verdict{Label: "SAFE", Confidence: 250}, "confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("http", tt.verdict, time.Now())
			if !IsMalformedResponseError(err) {
				t.Fatalf("Expected MalformedResponseError, got %v", err)
			}
			malformed := err.(*MalformedResponseError)
			if malformed.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, malformed.Field)
			}
		})
	}
}
