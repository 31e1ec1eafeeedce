package mcp

import "fmt"

// parseStringArg extracts a string argument from an MCP arguments map.
// Returns an error if the argument is required but missing or invalid.
func parseStringArg(argsMap map[string]interface{}, key string, required bool) (string, error) {
	val, ok := argsMap[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// parseIntArgPtr extracts an optional integer argument as a pointer.
// Returns nil if the argument is missing or not a number.
// MCP sends numbers as float64; fractional values are rejected.
func parseIntArgPtr(argsMap map[string]interface{}, key string) *int {
	val, ok := argsMap[key]
	if !ok {
		return nil
	}

	f, ok := val.(float64)
	if !ok || f != float64(int(f)) {
		return nil
	}

	result := int(f)
	return &result
}
