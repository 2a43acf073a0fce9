// Package store provides persistent storage for rule schemas keyed by form ID.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/formrules/pkg/formrules/config"
)

// Store persists encoded rule schemas.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the schema bytes for a form.
	// Overwrites if the form already exists.
	Save(formID string, data []byte) error

	// Load retrieves the schema bytes for a form.
	// Returns ErrNotFound if the form doesn't exist.
	Load(formID string) ([]byte, error)

	// List returns metadata for every stored form, ordered by form ID.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a form.
	// Returns nil if the form doesn't exist.
	Delete(formID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the schema.
type Info struct {
	FormID    string
	Revision  int
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a form doesn't exist.
	ErrNotFound = errors.New("form not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("schema store closed")

	// ErrEmptyFormID indicates a blank form ID was supplied.
	ErrEmptyFormID = errors.New("form ID is empty")
)

// PutSchema encodes schema as CBOR and saves it under formID.
func PutSchema(s Store, formID string, schema *config.Schema) error {
	if formID == "" {
		return ErrEmptyFormID
	}
	data, err := schema.MarshalBinary()
	if err != nil {
		return fmt.Errorf("put schema %q: %w", formID, err)
	}
	return s.Save(formID, data)
}

// GetSchema loads and decodes the schema stored under formID.
func GetSchema(s Store, formID string) (*config.Schema, error) {
	data, err := s.Load(formID)
	if err != nil {
		return nil, err
	}
	var schema config.Schema
	if err := schema.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("get schema %q: %w", formID, err)
	}
	return &schema, nil
}
