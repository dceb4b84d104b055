package query

import (
	"encoding/json"
	"fmt"
	"os"

	tt "github.com/treescope/treescope/internal/types"
)

// ReadMatches decodes a structural-match set from a JSON file. Two layouts
// are accepted: a bare array of matches, or an object with a "matches" key,
// the envelope upstream matchers commonly emit.
func ReadMatches(path string) ([]tt.StructuralMatch, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeMatches(content)
}

// DecodeMatches decodes a structural-match set from raw JSON.
func DecodeMatches(data []byte) ([]tt.StructuralMatch, error) {
	var matches []tt.StructuralMatch
	if err := json.Unmarshal(data, &matches); err == nil {
		return matches, nil
	}

	var envelope struct {
		Matches []tt.StructuralMatch `json:"matches"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("error decoding match set: %w", err)
	}
	return envelope.Matches, nil
}

// ReadQuery reads a query file's text.
func ReadQuery(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
