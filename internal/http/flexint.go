package http

import (
	"bytes"
	"encoding/json"
)

// flexInt keeps the raw text of a numeric field that clients send either as a
// JSON number or a string. Anything else decodes as empty and is coerced later.
type flexInt string

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexInt(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n.String())
		return nil
	}
	*f = ""
	return nil
}
