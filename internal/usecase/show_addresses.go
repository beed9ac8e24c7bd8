package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spirit-dao/algebra-deploy/internal/domain/models"
)

// ShowAddressesResult contains the loaded address record
type ShowAddressesResult struct {
	Record *models.AddressRecord
	Path   string
}

// LookupAddressResult contains a single record entry
type LookupAddressResult struct {
	Key   string
	Value string
	Path  string
}

// UnknownKeyError is returned when a key is not in the address record
type UnknownKeyError struct {
	Key         string
	Suggestions []string
}

func (e *UnknownKeyError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("key %q not found in address record", e.Key)
	}
	return fmt.Sprintf("key %q not found in address record, did you mean: %s", e.Key, strings.Join(e.Suggestions, ", "))
}

// ShowAddresses reads the persisted address record
type ShowAddresses struct {
	records AddressRecordRepository
}

// NewShowAddresses creates a new ShowAddresses use case
func NewShowAddresses(records AddressRecordRepository) *ShowAddresses {
	return &ShowAddresses{records: records}
}

// Run loads the whole record
func (uc *ShowAddresses) Run(ctx context.Context) (*ShowAddressesResult, error) {
	record, err := uc.records.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &ShowAddressesResult{Record: record, Path: uc.records.GetPath()}, nil
}

// Lookup returns a single entry, suggesting close keys when it is missing
func (uc *ShowAddresses) Lookup(ctx context.Context, key string) (*LookupAddressResult, error) {
	record, err := uc.records.Load(ctx)
	if err != nil {
		return nil, err
	}

	if value, ok := record.Get(key); ok {
		return &LookupAddressResult{Key: key, Value: value, Path: uc.records.GetPath()}, nil
	}

	keys := record.Keys()
	matches := fuzzy.Find(key, keys)
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	return nil, &UnknownKeyError{Key: key, Suggestions: suggestions}
}
