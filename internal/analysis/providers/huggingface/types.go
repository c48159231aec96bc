package huggingface

import (
	"encoding/json"
	"errors"
)

// InferenceRequest is the text-classification request body
type InferenceRequest struct {
	Inputs  string            `json:"inputs"`
	Options *InferenceOptions `json:"options,omitempty"`
}

// InferenceOptions controls how the hosted model answers
type InferenceOptions struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
}

// LabelScore is one candidate label of a text-classification answer
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// InferenceResponse holds the candidates of a single input. The API answers
// either [[{...}]] or [{...}] depending on the pipeline.
type InferenceResponse []LabelScore

var errNoCandidates = errors.New("no label candidates")

// UnmarshalJSON accepts both the nested and the flat shape
func (r *InferenceResponse) UnmarshalJSON(data []byte) error {
	var nested [][]LabelScore
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested) == 0 {
			*r = nil
			return nil
		}
		*r = nested[0]
		return nil
	}

	var flat []LabelScore
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*r = flat
	return nil
}

// Best returns the highest scoring candidate
func (r InferenceResponse) Best() (LabelScore, error) {
	if len(r) == 0 {
		return LabelScore{}, errNoCandidates
	}

	best := r[0]
	for _, c := range r[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}
