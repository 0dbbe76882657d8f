package invoices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodePayload accepts either {"data": [row, ...]} or a single bare row
// object and returns the rows to ingest. Array elements that are not objects
// become nil rows, which the normalizer skips as missing fields.
func DecodePayload(body []byte) ([]RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var top map[string]any
	if err := dec.Decode(&top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the JSON object", ErrInvalidPayload)
	}

	items, ok := top["data"].([]any)
	if !ok {
		return []RawRow{RawRow(top)}, nil
	}

	rows := make([]RawRow, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		rows = append(rows, RawRow(obj))
	}
	return rows, nil
}
