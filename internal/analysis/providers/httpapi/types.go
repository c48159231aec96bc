package httpapi

// AnalyzeRequest is the body sent to the analysis endpoint
type AnalyzeRequest struct {
	Message string `json:"message"`
}

// AnalyzeResponse accepts the field spellings seen in the wild. Pointers tell
// a missing field apart from a zero value.
type AnalyzeResponse struct {
	Classification *string  `json:"classification,omitempty"`
	Label          *string  `json:"label,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Score          *float64 `json:"score,omitempty"`
	Details        *string  `json:"details,omitempty"`
	Explanation    *string  `json:"explanation,omitempty"`
	Message        *string  `json:"message,omitempty"`
}

func firstString(values ...*string) (string, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

func firstFloat(values ...*float64) (float64, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}
