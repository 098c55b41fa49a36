package prompt

import (
	"fmt"
	"testing"

	"github.com/replituseonly8-lang/Evelyn/internal/memory"
	"github.com/replituseonly8-lang/Evelyn/llm"
)

func recordWith(n int) memory.UserRecord {
	rec := memory.UserRecord{}
	for i := 0; i < n; i++ {
		rec.RecentExchanges = append(rec.RecentExchanges, memory.Exchange{
			User: fmt.Sprintf("q%d", i),
			Bot:  fmt.Sprintf("a%d", i),
		})
	}
	return rec
}

func TestBuildTwoExchanges(t *testing.T) {
	t.Parallel()

	msgs := Build("persona", recordWith(2), "current")
	// system + 2 pairs + current
	if len(msgs) != 6 {
		t.Fatalf("Build() len = %d, want 6", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "persona" {
		t.Fatalf("msgs[0] = %+v, want system persona", msgs[0])
	}
	wantOrder := []string{"q0", "a0", "q1", "a1", "current"}
	for i, want := range wantOrder {
		got := msgs[i+1]
		if got.Content != want {
			t.Fatalf("msgs[%d].Content = %q, want %q", i+1, got.Content, want)
		}
	}
	if msgs[5].Role != llm.RoleUser {
		t.Fatalf("last role = %q, want user", msgs[5].Role)
	}
}

func TestBuildCapsAtThreeExchanges(t *testing.T) {
	t.Parallel()

	msgs := Build("p", recordWith(5), "now")
	if len(msgs) != 8 {
		t.Fatalf("Build() len = %d, want 8 (system + 3 pairs + current)", len(msgs))
	}
	// The three newest exchanges, oldest of the subset first.
	if msgs[1].Content != "q2" || msgs[3].Content != "q3" || msgs[5].Content != "q4" {
		t.Fatalf("unexpected exchange order: %q %q %q", msgs[1].Content, msgs[3].Content, msgs[5].Content)
	}
}

func TestBuildEmptyRecord(t *testing.T) {
	t.Parallel()

	msgs := Build("p", memory.UserRecord{}, "first message")
	if len(msgs) != 2 {
		t.Fatalf("Build() len = %d, want 2", len(msgs))
	}
	if msgs[1].Content != "first message" {
		t.Fatalf("msgs[1].Content = %q, want current message", msgs[1].Content)
	}
}

func TestBuildRolePairs(t *testing.T) {
	t.Parallel()

	msgs := Build("p", recordWith(3), "x")
	for i := 1; i < len(msgs)-1; i += 2 {
		if msgs[i].Role != llm.RoleUser {
			t.Fatalf("msgs[%d].Role = %q, want user", i, msgs[i].Role)
		}
		if msgs[i+1].Role != llm.RoleAssistant {
			t.Fatalf("msgs[%d].Role = %q, want assistant", i+1, msgs[i+1].Role)
		}
	}
}
