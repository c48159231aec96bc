package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(reports []*Report) ([]byte, error) {
	output := &JSONOutput{
		Summary: summarize(reports),
		Scans:   make([]*ScanOutput, 0, len(reports)),
	}

	for _, r := range reports {
		output.Scans = append(output.Scans, createScanOutput(r))
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput represents the JSON document
type JSONOutput struct {
	Summary Summary       `json:"summary"`
	Scans   []*ScanOutput `json:"scans"`
}

// ScanOutput represents one scan
type ScanOutput struct {
	Source         string     `json:"source,omitempty"`
	Message        string     `json:"message"`
	Classification string     `json:"classification,omitempty"`
	Confidence     *float64   `json:"confidence,omitempty"`
	Details        string     `json:"details,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	Error          string     `json:"error,omitempty"`
}

func createScanOutput(r *Report) *ScanOutput {
	out := &ScanOutput{
		Source:  r.Source,
		Message: r.Message,
	}

	if r.Result == nil {
		out.Error = errorText(r)
		return out
	}

	confidence := r.Result.Confidence
	timestamp := r.Result.Timestamp
	out.Classification = r.Result.Classification.String()
	out.Confidence = &confidence
	out.Details = r.Result.Details
	out.Provider = r.Result.Provider
	out.Timestamp = &timestamp

	return out
}
