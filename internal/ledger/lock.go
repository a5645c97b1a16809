package ledger

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks serializes balance-affecting mutations per user. Two
// concurrent requests could otherwise both pass a read-check-write
// validation before either writes, overfunding a goal or overspending
// the pool.
var userLocks sync.Map

// lockUser locks the mutex for the user and returns the unlock
// function, to be deferred by the caller.
func lockUser(userID uuid.UUID) func() {
	mu, _ := userLocks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
