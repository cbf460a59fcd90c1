package models

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogUnavailable = errors.New("problem catalog is unavailable. please try again later")
	ErrPersistence        = errors.New("selection history storage failure")
	ErrNoCandidates       = errors.New("no candidate problems left for this tier")
	ErrUnknownTier        = errors.New("unknown tier")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadySelected    = errors.New("problem is already in the selection history")
	ErrArchivesDisabled   = errors.New("history archiving is disabled")
)

// CatalogError describes a failed catalog request. StatusCode is zero when the
// request never produced a response.
type CatalogError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *CatalogError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s, %v", ErrCatalogUnavailable, e.Err)
	}
	return fmt.Sprintf("%s, status %s", ErrCatalogUnavailable, e.Status)
}

func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s, %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
