// Package store holds opaque JSON blobs addressed by kind and id. Specs and auth tokens
// live here; the test engine never imports it.
package store

import (
	"errors"
	"fmt"
)

// Kinds used by the harness
const (
	KindSpec  = "spec"
	KindToken = "token"
)

// ErrNotFound is returned when no blob exists for a kind and id
var ErrNotFound = errors.New("not found")

// BlobStore is the persistence contract for specs and credentials
type BlobStore interface {
	Get(kind, id string) ([]byte, error)
	List(kind string) ([]string, error)
	Put(kind, id string, data []byte) error
	Delete(kind, id string) error
}

// OpError wraps a store failure with the operation and key it concerned
type OpError struct {
	Op   string
	Kind string
	ID   string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s %s", e.Op, e.Kind)
	if e.ID != "" {
		base += fmt.Sprintf("/%s", e.ID)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
