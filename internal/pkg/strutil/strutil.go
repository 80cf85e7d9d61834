// Package strutil contains small string conversion helpers used by the HTTP layer.
package strutil

import "strconv"

// ConvertToInt parses s as a base 10 integer and returns 0 when it is not one.
func ConvertToInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// ConvertToBool parses s as a boolean ("1", "true", "yes") and returns false otherwise.
func ConvertToBool(s string) bool {
	switch s {
	case "yes", "on":
		return true
	}
	v, err := strconv.ParseBool(s)
	return err == nil && v
}
