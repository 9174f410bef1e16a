package api

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackzampolin/registrar/internal/home"
	"github.com/jackzampolin/registrar/internal/pipeline"
)

// SaveRecord writes a processing result to the home records directory and
// returns the path it was written to.
func SaveRecord(homeDir *home.Dir, result *pipeline.Result) (string, error) {
	if err := homeDir.EnsureExists(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	path := homeDir.RecordPath(result.TranscriptID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}

// LoadRecord reads a previously saved processing result.
func LoadRecord(homeDir *home.Dir, transcriptID string) (*pipeline.Result, error) {
	data, err := os.ReadFile(homeDir.RecordPath(transcriptID))
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var result pipeline.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &result, nil
}
