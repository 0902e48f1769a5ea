package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Payload is the body of an outbound notification
type Payload map[string]any

// ToPayload converts a notification value into a flat JSON object
func ToPayload(v any) (Payload, error) {
	if p, ok := v.(Payload); ok {
		out := make(Payload, len(p))
		for k, val := range p {
			out[k] = val
		}
		return out, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal notification payload")
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "notification payload must be a JSON object")
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}
