// Package store defines the persistence contracts of the front desk and
// the records they carry.  Backends live in the memory and sqlite
// subpackages.
package store

import "context"

// Pinger is implemented by backends that can report whether the
// underlying storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
