package alerts

import (
	"encoding/json"
	"errors"
)

// Marshal encodes an alert list for storage backends that keep one value per scope.
func Marshal(list []Alert) ([]byte, error) {
	if list == nil {
		list = []Alert{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return data, nil
}

// Unmarshal decodes a list produced by Marshal. Empty input yields an empty list.
func Unmarshal(data []byte) ([]Alert, error) {
	if len(data) == 0 {
		return []Alert{}, nil
	}
	var list []Alert
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if list == nil {
		list = []Alert{}
	}
	return list, nil
}
