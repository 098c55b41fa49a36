// Package convlog appends one truncated line per completed turn to a
// JSONL audit log. Write-only from the bot's perspective; downstream
// analysis reads it.
package convlog

import (
	"time"

	"github.com/google/uuid"
	"github.com/replituseonly8-lang/Evelyn/internal/fsstore"
)

// maxSideChars caps how much of each side of an exchange is kept, for
// privacy as much as for size.
const maxSideChars = 200

type Entry struct {
	Timestamp      time.Time `json:"timestamp"`
	TurnID         string    `json:"turn_id"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	ResponseLength int       `json:"response_length"`
}

type Logger struct {
	w   *fsstore.JSONLWriter
	now func() time.Time
}

func Open(path string) (*Logger, error) {
	w, err := fsstore.NewJSONLWriter(path, fsstore.JSONLOptions{FlushEachWrite: true})
	if err != nil {
		return nil, err
	}
	return &Logger{w: w, now: time.Now}, nil
}

// Record appends one turn. Both sides are truncated to 200 characters;
// ResponseLength keeps the untruncated length for analysis.
func (l *Logger) Record(userID, username, message, response string) error {
	return l.w.AppendJSON(Entry{
		Timestamp:      l.now().UTC(),
		TurnID:         uuid.NewString(),
		UserID:         userID,
		Username:       username,
		Message:        truncate(message, maxSideChars),
		Response:       truncate(response, maxSideChars),
		ResponseLength: len(response),
	})
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.w.Close()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
