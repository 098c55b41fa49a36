package memory

import "time"

// MaxRecentExchanges bounds the rolling window kept per user. The oldest
// exchange is evicted once the window is full.
const MaxRecentExchanges = 5

// Exchange is one stored user/bot turn pair.
type Exchange struct {
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
}

// UserRecord is the rolling memory kept for one user. The JSON field names
// are the on-disk wire format; changing them breaks existing memory files.
type UserRecord struct {
	Username         string     `json:"username"`
	FirstInteraction time.Time  `json:"first_interaction"`
	LastInteraction  time.Time  `json:"last_interaction"`
	MessageCount     int        `json:"message_count"`
	RecentExchanges  []Exchange `json:"recent_messages"`
}

func (r UserRecord) clone() UserRecord {
	out := r
	out.RecentExchanges = make([]Exchange, len(r.RecentExchanges))
	copy(out.RecentExchanges, r.RecentExchanges)
	return out
}
