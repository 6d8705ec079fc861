package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process events already carry the
// struct; payloads read back from the dead-letter file go through JSON.
func DecodePayload[T any](payload interface{}) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(payload)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
