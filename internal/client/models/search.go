package models

import (
	"bytes"
	"encoding/json"
)

type SearchDocument struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// SearchResult is one ranked match. Relevance is in 0..1.
type SearchResult struct {
	Document  SearchDocument `json:"document"`
	Relevance float64        `json:"relevance"`
	Preview   string         `json:"preview"`
}

// SearchResponse decodes the backend's {"results": ...} envelope, whose
// value is either an array of results or an object carrying "error".
//
// Failed is set only for the error object; an empty array is a valid,
// successful answer with zero matches.
type SearchResponse struct {
	Results []SearchResult
	Error   string
	Failed  bool
}

func (r *SearchResponse) UnmarshalJSON(b []byte) error {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}

	*r = SearchResponse{Results: []SearchResult{}}

	raw := bytes.TrimSpace(envelope.Results)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '[' {
		var results []SearchResult
		if err := json.Unmarshal(raw, &results); err != nil {
			return err
		}
		r.Results = results
		return nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	msg, ok := payload["error"]
	if !ok {
		return nil
	}
	r.Failed = true
	var text string
	if err := json.Unmarshal(msg, &text); err == nil {
		r.Error = text
	}
	return nil
}
