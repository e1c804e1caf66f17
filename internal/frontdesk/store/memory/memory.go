// Package memory provides in-process implementations of the store
// interfaces.  Data does not survive a restart.
package memory

import "github.com/BrandonDHaskell/Frontdesk/server/internal/frontdesk/store"

var (
	_ store.PassStore      = (*PassStore)(nil)
	_ store.VisitorStore   = (*VisitorStore)(nil)
	_ store.ViolationStore = (*ViolationStore)(nil)
	_ store.ResidentStore  = (*ResidentStore)(nil)
	_ store.Pinger         = (*PassStore)(nil)
)
