package event

import "encoding/json"

// DecodePayload returns payload as T. In-process payloads already have the
// concrete type; maps and raw JSON (dead-letter lines, replays) are converted
// through encoding/json.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
		return out, nil
	case json.RawMessage:
		return out, json.Unmarshal(v, &out)
	case []byte:
		return out, json.Unmarshal(v, &out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	return out, json.Unmarshal(data, &out)
}
