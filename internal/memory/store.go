package memory

import (
	"sync"
	"time"

	"github.com/replituseonly8-lang/Evelyn/internal/fsstore"
)

// Store owns the user-id → UserRecord mapping and its on-disk JSON mirror.
// The document is loaded once at startup and rewritten in full on every
// mutation. One mutex is held across the whole load-modify-save of a
// mutation, so two rapid messages from the same user cannot race on the
// record; last writer still wins across processes (single-process assumed).
type Store struct {
	path string
	now  func() time.Time

	mu    sync.Mutex
	users map[string]*UserRecord
}

func NewStore(path string) *Store {
	return &Store{
		path:  path,
		now:   time.Now,
		users: make(map[string]*UserRecord),
	}
}

// Load reads the memory document from disk. A missing file is not an
// error. On failure the store stays usable with whatever was loaded so
// far (usually empty); callers log and continue.
func (s *Store) Load() error {
	users := make(map[string]*UserRecord)
	if _, err := fsstore.ReadJSON(s.path, &users); err != nil {
		return err
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the record for userID, so callers can read it
// without holding the store lock.
func (s *Store) Get(userID string) (UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return UserRecord{}, false
	}
	return rec.clone(), true
}

// Len reports how many users have a record.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// RecordExchange appends one completed turn to userID's record, creating
// the record on first contact, and persists the full document. Username
// is overwritten each time so the latest known name wins.
func (s *Store) RecordExchange(userID, username, userText, botText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.users[userID]
	if !ok {
		rec = &UserRecord{FirstInteraction: now}
		s.users[userID] = rec
	}
	rec.Username = username
	rec.LastInteraction = now
	rec.MessageCount++
	rec.RecentExchanges = append(rec.RecentExchanges, Exchange{
		User:      userText,
		Bot:       botText,
		Timestamp: now,
	})
	if n := len(rec.RecentExchanges); n > MaxRecentExchanges {
		rec.RecentExchanges = rec.RecentExchanges[n-MaxRecentExchanges:]
	}

	return fsstore.WriteJSONAtomic(s.path, s.users, fsstore.FileOptions{})
}
