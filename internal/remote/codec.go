package remote

import (
	"encoding/json"
	"fmt"
)

// The mirror stores whatever JSON it was handed, so rows are validated
// here, at the adapter boundary: a document that does not decode into
// the local type fails the fetch instead of corrupting local state.

// DecodeRows decodes a fetched collection into its typed form. Any
// malformed or id-less row fails the whole collection.
func DecodeRows[T any](collection string, rows []Row) ([]T, error) {
	items := make([]T, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			return nil, fmt.Errorf("remote: %s row with empty id", collection)
		}
		var item T
		if err := json.Unmarshal(r.Doc, &item); err != nil {
			return nil, fmt.Errorf("remote: %s row %s: %w", collection, r.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// EncodeRow wraps one entity into its mirror row.
func EncodeRow(id string, v any) (Row, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return Row{}, fmt.Errorf("remote: encode %s: %w", id, err)
	}
	return Row{ID: id, Doc: doc}, nil
}
