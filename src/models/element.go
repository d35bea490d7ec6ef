package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Element is one entry in a form's content sequence. The builder frontend
// owns the element schema; the backend relies only on the id field and
// carries everything else through untouched.
type Element map[string]interface{}

// ID returns the element's id, or "" when the field is absent or not a string.
func (e Element) ID() string {
	id, _ := e["id"].(string)
	return id
}

// Elements is the ordered element sequence stored in Form.Content.
type Elements []Element

// ParseElements decodes a content blob. Absent content means a form whose
// designer has not saved anything yet, so it parses as an empty sequence.
// Malformed JSON is an error, not an empty result.
func ParseElements(content string) (Elements, error) {
	if strings.TrimSpace(content) == "" {
		return Elements{}, nil
	}

	var elements Elements
	if err := json.Unmarshal([]byte(content), &elements); err != nil {
		return nil, fmt.Errorf("invalid form content: %w", err)
	}
	return elements, nil
}

// Remove filters out the element with the given id, preserving order.
// An unknown id is a no-op.
func (els Elements) Remove(elementID string) Elements {
	filtered := make(Elements, 0, len(els))
	for _, el := range els {
		if el.ID() == elementID {
			continue
		}
		filtered = append(filtered, el)
	}
	return filtered
}

// Serialize encodes the sequence back into the content blob format.
func (els Elements) Serialize() (string, error) {
	data, err := json.Marshal(els)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
