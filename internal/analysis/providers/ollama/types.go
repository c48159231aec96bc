package ollama

import "time"

// GenerateRequest represents an Ollama generate API request
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	System  string   `json:"system,omitempty"`
	Format  string   `json:"format,omitempty"`
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse represents an Ollama generate API response
type GenerateResponse struct {
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`

	TotalDuration int64 `json:"total_duration,omitempty"`
	EvalCount     int   `json:"eval_count,omitempty"`
}

// Options contains generation options
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"` // Maximum tokens to generate
}

// TagsResponse represents the response from /api/tags
type TagsResponse struct {
	Models []Model `json:"models"`
}

// Model represents an Ollama model
type Model struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ModelVerdict is the JSON object the model is asked to produce
type ModelVerdict struct {
	Classification string   `json:"classification"` // SAFE, SUSPICIOUS or PHISHING
	Confidence     *float64 `json:"confidence"`     // 0-100 scale
	Explanation    string   `json:"explanation"`
}
