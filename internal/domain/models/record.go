package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// AddressRecord is the persisted map from logical component name to address.
// Keys owned by the deployment live in Known; everything else passes through
// Extra untouched.
type AddressRecord struct {
	Known map[RecordKey]string
	Extra map[string]json.RawMessage
}

// NewAddressRecord returns an empty record
func NewAddressRecord() *AddressRecord {
	return &AddressRecord{
		Known: make(map[RecordKey]string),
		Extra: make(map[string]json.RawMessage),
	}
}

// Merge upserts the given keys. Keys not present in updates are left as they are.
func (r *AddressRecord) Merge(updates map[RecordKey]string) {
	if r.Known == nil {
		r.Known = make(map[RecordKey]string)
	}
	for key, value := range updates {
		r.Known[key] = value
		delete(r.Extra, string(key))
	}
}

// Get returns the value stored under key, decoding passthrough string values
func (r *AddressRecord) Get(key string) (string, bool) {
	if v, ok := r.Known[RecordKey(key)]; ok {
		return v, true
	}
	raw, ok := r.Extra[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// Keys returns every key in the record, sorted
func (r *AddressRecord) Keys() []string {
	keys := lo.Map(lo.Keys(r.Known), func(k RecordKey, _ int) string { return string(k) })
	keys = append(keys, lo.Keys(r.Extra)...)
	keys = lo.Uniq(keys)
	slices.Sort(keys)
	return keys
}

// Len returns the number of keys in the record
func (r *AddressRecord) Len() int {
	return len(r.Keys())
}

// MarshalJSON writes the union of passthrough and owned keys
func (r *AddressRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+len(r.Known))
	maps.Copy(out, r.Extra)
	for key, value := range r.Known {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[string(key)] = encoded
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. Owned keys with string values are
// lifted into Known; anything else is kept verbatim in Extra.
func (r *AddressRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	r.Known = make(map[RecordKey]string)
	r.Extra = make(map[string]json.RawMessage)
	for key, value := range raw {
		if IsRecordKey(key) && isJSONString(value) {
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				r.Known[RecordKey(key)] = s
				continue
			}
		}
		r.Extra[key] = value
	}
	return nil
}

// isJSONString reports whether value is a JSON string literal. null decodes
// into a Go string without error, so it has to be told apart here.
func isJSONString(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) > 0 && trimmed[0] == '"'
}
