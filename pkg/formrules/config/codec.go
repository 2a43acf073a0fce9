package config

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// MarshalBinary produces a deterministic CBOR encoding of the schema.
// Equal schemas always encode to identical bytes.
func (s *Schema) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("create CBOR encoder: %w", err)
	}

	// Alias drops the method set so Marshal does not recurse.
	type schemaAlias Schema
	data, err := encMode.Marshal((*schemaAlias)(s))
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a schema produced by MarshalBinary.
func (s *Schema) UnmarshalBinary(data []byte) error {
	decMode, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return fmt.Errorf("create CBOR decoder: %w", err)
	}

	type schemaAlias Schema
	if err := decMode.Unmarshal(data, (*schemaAlias)(s)); err != nil {
		return fmt.Errorf("decode schema: %w", err)
	}
	return nil
}
