package sprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Header is a single header field of a transaction.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields.
// Unlike http.Header, it keeps the order in which the fields were received.
type Headers []Header

// Get returns the value of the first field named name (case-insensitive).
func (h Headers) Get(name string) string {
	for _, field := range h {
		if strings.EqualFold(field.Name, name) {
			return field.Value
		}
	}
	return ""
}

// Add appends a field.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// MarshalJSON encodes the headers as a JSON object, keeping field order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling header name '%s'", field.Name)
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling value of header '%s'", field.Name)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into headers in document order.
// Array values yield one field per element.
func (h *Headers) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return errors.Wrap(err, "reading headers")
	}
	if token == nil {
		*h = nil
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("headers must be a JSON object: %v", token)
	}

	headers := Headers{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return errors.Wrap(err, "reading header name")
		}
		name, ok := token.(string)
		if !ok {
			return errors.Errorf("unexpected header name: %v", token)
		}
		var value interface{}
		if err := decoder.Decode(&value); err != nil {
			return errors.Wrapf(err, "reading value of header '%s'", name)
		}
		switch v := value.(type) {
		case []interface{}:
			for _, elem := range v {
				headers.Add(name, headerValue(elem))
			}
		default:
			headers.Add(name, headerValue(v))
		}
	}
	if _, err := decoder.Token(); err != nil {
		return errors.Wrap(err, "reading end of headers")
	}

	*h = headers
	return nil
}

func headerValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
