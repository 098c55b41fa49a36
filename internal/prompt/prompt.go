// Package prompt assembles the bounded conversational context sent to the
// completion API: persona, a short tail of stored exchanges, then the
// current message.
package prompt

import (
	"github.com/replituseonly8-lang/Evelyn/internal/memory"
	"github.com/replituseonly8-lang/Evelyn/llm"
)

// ContextExchanges is how many stored exchanges are replayed into the
// prompt. Smaller than the memory window on purpose: memory keeps more
// than the model sees.
const ContextExchanges = 3

// Build returns the ordered message sequence for one turn. Pure function;
// rec is never mutated.
func Build(persona string, rec memory.UserRecord, currentText string) []llm.Message {
	msgs := make([]llm.Message, 0, 2*ContextExchanges+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: persona})

	recent := rec.RecentExchanges
	if len(recent) > ContextExchanges {
		recent = recent[len(recent)-ContextExchanges:]
	}
	for _, ex := range recent {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: ex.User},
			llm.Message{Role: llm.RoleAssistant, Content: ex.Bot},
		)
	}

	return append(msgs, llm.Message{Role: llm.RoleUser, Content: currentText})
}
