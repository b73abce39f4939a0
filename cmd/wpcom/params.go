package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/wpcom-harvester/pkg/wpcom"
)

// parseParams turns repeated key=value flags and an optional JSON object into
// request params. A key given twice becomes a list; flag values override --data.
func parseParams(pairs []string, data string) (wpcom.Params, error) {
	params := wpcom.Params{}

	if data = strings.TrimSpace(data); data != "" {
		dec := json.NewDecoder(strings.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return nil, fmt.Errorf("--data must be a JSON object: %w", err)
		}
	}

	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q (want key=value)", pair)
		}
		key = strings.TrimSuffix(key, "[]")

		if !seen[key] {
			seen[key] = true
			params[key] = val
			continue
		}
		switch cur := params[key].(type) {
		case []any:
			params[key] = append(cur, val)
		default:
			params[key] = []any{cur, val}
		}
	}

	if len(params) == 0 {
		return nil, nil
	}
	return params, nil
}

func parseID(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return v, nil
}
