package core

// ReferenceGenerator produces unique payment references for ledger entries
// that arrive without one
type ReferenceGenerator interface {
	NewReference() string
}
