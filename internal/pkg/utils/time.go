package utils

import "time"

const dateOnlyLayout = "2006-01-02"

// ParseOptionalDate parses a YYYY-MM-DD value, returning nil for an empty string.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func ParseOptionalRFC3339(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
