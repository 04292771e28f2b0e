package render

import (
	"encoding/json"
	"fmt"
)

// RenderJSON encodes the scene for browser clients.
func RenderJSON(s Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}
