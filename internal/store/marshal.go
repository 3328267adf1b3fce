package store

import (
	"encoding/json"
	"fmt"
)

// marshalChain stores a decay chain as a JSON array of PDG codes.
func marshalChain(chain []int) (string, error) {
	if len(chain) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(chain)
	if err != nil {
		return "", fmt.Errorf("marshal chain: %w", err)
	}
	return string(data), nil
}

// unmarshalChain parses a stored chain. Empty chains read back as nil.
func unmarshalChain(data string) ([]int, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var chain []int
	if err := json.Unmarshal([]byte(data), &chain); err != nil {
		return nil, fmt.Errorf("unmarshal chain: %w", err)
	}
	return chain, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
