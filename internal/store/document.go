package store

import "encoding/json"

// Document is one schema-less record. System fields: "id" (unique within
// its collection), "createdAt"/"updatedAt" (ISO-8601), and optionally
// "createdBy"/"updatedBy".
type Document map[string]any

// ID returns the document's id, or "" if unset.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Clone returns a shallow copy. Nested values are shared; the store
// never mutates nested values in place, so this is enough to keep
// callers' maps isolated from persisted state.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Decode converts a document into a typed entity via its JSON form.
func Decode[T any](d Document) (T, error) {
	var out T
	data, err := json.Marshal(d)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeAll converts a document list into typed entities, skipping none.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := Decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode converts a typed entity into a document via its JSON form.
func Encode(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d, nil
}
