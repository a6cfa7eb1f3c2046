package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/selesai/internal/model"
)

// record is the persisted shape of an item. Field names and order are part of
// the storage format; changing them needs a decode-side migration.
type record struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

// Encode serializes items in list order. An empty list encodes as [].
func Encode(items []model.Item) []byte {
	records := make([]record, 0, len(items))
	for _, item := range items {
		records = append(records, record{ID: item.ID, Description: item.Description, Checked: item.Checked})
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// A slice of plain structs cannot fail to encode.
	_ = enc.Encode(records)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// Decode parses a stored list. A blank value or a literal null means nothing
// was stored and is reported as ErrNotFound; anything else that does not
// decode into a valid list wraps ErrCorrupt.
func Decode(raw []byte) ([]model.Item, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNotFound
	}
	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	items := make([]model.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, model.Item{ID: rec.ID, Description: rec.Description, Checked: rec.Checked})
	}
	if err := model.ValidateList(items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return items, nil
}
