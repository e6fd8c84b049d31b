package bot

import (
	"fmt"
	"strings"
)

// ParseAgeHeight parses the "Возраст, Рост" answer. Exactly two
// comma-separated non-empty tokens are accepted; anything else is a
// validation error and the caller re-prompts without advancing.
func ParseAgeHeight(text string) (age, height string, err error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected two comma-separated values, got %d", len(parts))
	}

	age = strings.TrimSpace(parts[0])
	height = strings.TrimSpace(parts[1])
	if age == "" || height == "" {
		return "", "", fmt.Errorf("age and height must be non-empty")
	}

	return age, height, nil
}
