package records

import (
	"sync"
	"time"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/entity"
	"github.com/lmarchetti/docdesk/internal/ledger"
)

// Store is the in-memory record table plus the last-known-good ledger
// snapshot. It is an append log, not a keyed table: UniqueKey collisions
// are a read-side concern, the store does not re-validate them.
//
// A single mutex serializes the writers (append, replace, markEmailed);
// readers get snapshot copies taken under the same lock, so a reader
// observes either the pre- or post-replace table, never a partial one.
type Store struct {
	mu          sync.RWMutex
	records     []entity.DocumentRecord
	ledgerRows  []ledger.Row
	refreshedAt time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Append inserts a record at the end of the table.
func (s *Store) Append(rec entity.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// ReplaceAll atomically swaps the entire record table. The caller decides
// whether to call it at all: on a failed upstream fetch it must not be
// called, so the store keeps its last-known-good contents.
func (s *Store) ReplaceAll(recs []entity.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = recs
	s.refreshedAt = time.Now()
}

// ReplaceLedger atomically swaps the cached ledger table.
func (s *Store) ReplaceLedger(rows []ledger.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgerRows = rows
}

// MarkEmailed sets status EMAILED on every record whose UniqueKey is in
// keys. Unmatched keys are silently ignored and already-EMAILED records are
// left as they are, so the operation is idempotent. Returns the number of
// matched records.
func (s *Store) MarkEmailed(keys []string) int {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	matched := 0
	for i := range s.records {
		if _, ok := set[s.records[i].UniqueKey]; !ok {
			continue
		}
		matched++
		s.records[i].Status = constants.StatusEmailed
	}
	return matched
}

// Snapshot returns a copy of the record table in insertion order.
func (s *Store) Snapshot() []entity.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.DocumentRecord, len(s.records))
	copy(out, s.records)
	return out
}

// LedgerSnapshot returns a copy of the cached ledger table.
func (s *Store) LedgerSnapshot() []ledger.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Row, len(s.ledgerRows))
	copy(out, s.ledgerRows)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// RefreshedAt returns the time of the last successful table replace.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
