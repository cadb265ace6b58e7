package main

import (
	"fmt"
	"strconv"
	"strings"
)

func parseIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("-ids is required")
	}
	return ids, nil
}

// parseAssignments turns "active=false,price=12.5,name=Soup" into a patch.
// true/false become booleans, numbers become float64, the rest stays a string.
func parseAssignments(raw string) (map[string]any, error) {
	patch := make(map[string]any)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, want field=value", pair)
		}
		value = strings.TrimSpace(value)

		if value == "true" || value == "false" {
			patch[key] = value == "true"
		} else if f, err := strconv.ParseFloat(value, 64); err == nil {
			patch[key] = f
		} else {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("-set is required")
	}
	return patch, nil
}
