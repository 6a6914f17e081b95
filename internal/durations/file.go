package durations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadFile reads a JSON or YAML duration file
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceUnavailable, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// record is the object form of a dataset entry
type record struct {
	Duration *float64 `json:"duration"`
}

// Parse decodes a top-level mapping whose values are either a number of
// seconds or an object with a "duration" field.
func Parse(data []byte) (*Dataset, error) {
	var raw map[string]json.RawMessage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFormat, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a mapping of identifiers to durations", ErrDataFormat)
	}

	ds := New(nil)
	for id, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || bytes.Equal(value, []byte("null")) {
			ds.markIncomplete(id)
			continue
		}

		var seconds float64
		switch value[0] {
		case '{':
			var rec record
			if err := json.Unmarshal(value, &rec); err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrDataFormat, id, err)
			}
			if rec.Duration == nil {
				ds.markIncomplete(id)
				continue
			}
			seconds = *rec.Duration
		default:
			if err := json.Unmarshal(value, &seconds); err != nil {
				return nil, fmt.Errorf("%w: %q: duration must be a number", ErrDataFormat, id)
			}
		}

		if seconds < 0 {
			return nil, fmt.Errorf("%w: %q: negative duration %v", ErrDataFormat, id, seconds)
		}
		ds.values[id] = seconds
	}
	return ds, nil
}
