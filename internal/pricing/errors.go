package pricing

import "fmt"

// DomainError marks a pricing-rule violation. Handlers map it to 400; it is
// never wrapped into a StorageError because nothing was written.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return e.Reason }

// ErrZeroOldPrice is the defining failure case of propagation: the relative
// change is undefined when the previous price is zero.
var ErrZeroOldPrice = &DomainError{Reason: "old price cannot be zero"}

// StorageError wraps a failed propagation commit. Callers must treat it as
// "no changes applied" — the transaction rolled back atomically.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("pricing: storage failure: %v", e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
