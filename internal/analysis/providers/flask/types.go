package flask

// AnalyzeRequest is the body the Flask backend expects
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the Flask backend answer. Classification is optional and
// wins over IsPhishing when present.
type AnalyzeResponse struct {
	Text           string   `json:"text,omitempty"`
	IsPhishing     *bool    `json:"is_phishing,omitempty"`
	Classification *string  `json:"classification,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Message        string   `json:"message,omitempty"`
}

// HealthResponse is the answer of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
