package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/KaramelBytes/personagni/internal/utils"
)

// WriteJSON atomically writes the summary as indented JSON.
func WriteJSON(path string, s *Summary) error {
	b, err := utils.PrettyJSON(s)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// ReadJSON loads a summary written by WriteJSON.
func ReadJSON(path string) (*Summary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return &s, nil
}
