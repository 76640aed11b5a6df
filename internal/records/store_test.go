package records

import (
	"reflect"
	"testing"

	"github.com/lmarchetti/docdesk/constants"
	"github.com/lmarchetti/docdesk/internal/entity"
)

func TestStoreAppendAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Append(entity.DocumentRecord{UniqueKey: "k1", Status: constants.StatusNew})
	s.Append(entity.DocumentRecord{UniqueKey: "k2", Status: constants.StatusNew})

	snap := s.Snapshot()
	if got := keysOf(snap); !reflect.DeepEqual(got, []string{"k1", "k2"}) {
		t.Fatalf("Snapshot() keys = %v", got)
	}

	// Mutating the snapshot must not leak into the store.
	snap[0].Status = constants.StatusEmailed
	if s.Snapshot()[0].Status != constants.StatusNew {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestStoreReplaceAll(t *testing.T) {
	s := NewStore()
	s.Append(entity.DocumentRecord{UniqueKey: "old"})

	s.ReplaceAll([]entity.DocumentRecord{{UniqueKey: "n1"}, {UniqueKey: "n2"}})
	if got := keysOf(s.Snapshot()); !reflect.DeepEqual(got, []string{"n1", "n2"}) {
		t.Errorf("after ReplaceAll, keys = %v", got)
	}
	if s.RefreshedAt().IsZero() {
		t.Error("ReplaceAll should stamp the refresh time")
	}
}

func TestStoreMarkEmailedIdempotent(t *testing.T) {
	s := NewStore()
	s.Append(entity.DocumentRecord{UniqueKey: "k1", Status: constants.StatusNew})
	s.Append(entity.DocumentRecord{UniqueKey: "k2", Status: constants.StatusNew})
	s.Append(entity.DocumentRecord{UniqueKey: "k3", Status: constants.StatusEmailed})

	keys := []string{"k1", "k3", "missing"}
	if matched := s.MarkEmailed(keys); matched != 2 {
		t.Errorf("MarkEmailed() matched = %d, want 2", matched)
	}
	first := s.Snapshot()

	// Applying the same set twice leaves the store identical.
	s.MarkEmailed(keys)
	second := s.Snapshot()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("MarkEmailed is not idempotent:\n first = %+v\nsecond = %+v", first, second)
	}

	if second[0].Status != constants.StatusEmailed {
		t.Error("k1 should be EMAILED")
	}
	if second[1].Status != constants.StatusNew {
		t.Error("k2 should be untouched")
	}
}
