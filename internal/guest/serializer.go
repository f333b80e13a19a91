package guest

import (
	"encoding/json"
	"fmt"

	"mockmate/internal/model"
)

// guestStorageKey is the fixed slot prefix every guest snapshot lives
// under; one slot per guest token, fully overwritten on every change.
const guestStorageKey = "interview_guest_session"

// Serializer snapshots a guest session into one ephemeral storage slot
// and restores it on mount. Last write wins; there is no merging.
type Serializer struct {
	store Store
	key   string
}

// NewSerializer creates a serializer for one guest token.
func NewSerializer(store Store, token string) *Serializer {
	return &Serializer{
		store: store,
		key:   fmt.Sprintf("%s:%s", guestStorageKey, token),
	}
}

// Save overwrites the storage slot with the full snapshot. An all-empty
// snapshot is not persisted, matching a fresh session that never stored
// anything.
func (s *Serializer) Save(snap model.GuestSnapshot) error {
	if snap.Empty() {
		return nil
	}
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize guest session: %w", err)
	}
	s.store.Set(s.key, string(blob))
	return nil
}

// Load restores the snapshot from storage. The restore is all-or-nothing:
// a missing or unreadable slot yields no snapshot at all, never a partial
// one.
func (s *Serializer) Load() (model.GuestSnapshot, bool) {
	blob, ok := s.store.Get(s.key)
	if !ok {
		return model.GuestSnapshot{}, false
	}
	var snap model.GuestSnapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		// A corrupt slot is useless; drop it rather than half-restore.
		s.store.Remove(s.key)
		return model.GuestSnapshot{}, false
	}
	return snap, true
}

// Reset clears the storage slot.
func (s *Serializer) Reset() {
	s.store.Remove(s.key)
}
