package coinfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObjectWriter builds a JSON object whose keys keep the order they were
// appended in. The first marshaling error sticks and is returned by
// MarshalJSON. Its zero value is ready to use.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// Append adds key with the JSON encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	k, _ := json.Marshal(key)

	if w.buf.Len() == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(v)
	return w
}

// MarshalJSON returns the object.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	return append(bytes.Clone(w.buf.Bytes()), '}'), nil
}
