package utils

import (
	"encoding/json"
	"strings"

	"inkbook/internal/domain"
)

// ListToString converts []string to a JSON string (safe for DB and mirror).
func ListToString(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// StringToList converts a stored string back to []string.
func StringToList(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		// Fallback: treat as comma-separated if invalid JSON
		return strings.Split(s, ",")
	}
	return items
}

// AvailabilityToString keeps the nil/empty distinction: nil -> "", empty -> "{}".
func AvailabilityToString(a domain.Availability) string {
	if a == nil {
		return ""
	}
	data, _ := json.Marshal(a)
	return string(data)
}

func StringToAvailability(s string) (domain.Availability, error) {
	if s == "" {
		return nil, nil
	}
	var a domain.Availability
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return nil, err
	}
	if a == nil {
		a = domain.Availability{}
	}
	return a, nil
}
