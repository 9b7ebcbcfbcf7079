package centerplus

import (
	"encoding/json"
	"fmt"
)

// unwrapList normalizes the API's list envelopes. Depending on the schema
// generation a listing answers a bare array or an object wrapping it under
// an entity key ("courses"), "data" or "results". The keys are tried in
// order; an envelope with none of them yields an empty list, which callers
// treat as a data-shape warning, not an error.
func unwrapList[T any](body []byte, keys ...string) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("centerplus: unexpected list response: %w", err)
	}

	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err == nil && list != nil {
			return list, nil
		}
	}

	return []T{}, nil
}
