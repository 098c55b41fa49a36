package trigger

import (
	"testing"

	"github.com/replituseonly8-lang/Evelyn/internal/telegram"
)

var wakeNames = []string{"anikah", "anika", "ani", "anu", "anuh"}

func groupMsg(text string) *telegram.Message {
	return &telegram.Message{
		Chat: &telegram.Chat{ID: -100, Type: "supergroup"},
		Text: text,
	}
}

func TestPrivateChatAlwaysResponds(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "whatever", "no wake name here"} {
		msg := &telegram.Message{Chat: &telegram.Chat{ID: 1, Type: "private"}, Text: text}
		if !ShouldRespond(msg, "evelyn_bot", wakeNames) {
			t.Fatalf("ShouldRespond(private, %q) = false, want true", text)
		}
	}
}

func TestGroupWithoutAddressStaysSilent(t *testing.T) {
	t.Parallel()

	cases := []string{
		"morning everyone",
		"did you see the match",
		"@someone_else check this",
		"",
	}
	for _, text := range cases {
		if ShouldRespond(groupMsg(text), "evelyn_bot", wakeNames) {
			t.Fatalf("ShouldRespond(group, %q) = true, want false", text)
		}
	}
}

func TestGroupWakeNameMixedCase(t *testing.T) {
	t.Parallel()

	cases := []string{
		"ANIKAH what do you think",
		"yo aNi you there",
		"Anu??",
		"hey anikah",
	}
	for _, text := range cases {
		if !ShouldRespond(groupMsg(text), "evelyn_bot", wakeNames) {
			t.Fatalf("ShouldRespond(group, %q) = false, want true", text)
		}
	}
}

func TestGroupAtMention(t *testing.T) {
	t.Parallel()

	if !ShouldRespond(groupMsg("@Evelyn_Bot settle this"), "evelyn_bot", wakeNames) {
		t.Fatalf("ShouldRespond(@mention) = false, want true")
	}
}

func TestGroupReplyToBot(t *testing.T) {
	t.Parallel()

	msg := groupMsg("lol no way")
	msg.ReplyTo = &telegram.Message{From: &telegram.User{Username: "EVELYN_bot"}}
	if !ShouldRespond(msg, "evelyn_bot", wakeNames) {
		t.Fatalf("ShouldRespond(reply to bot) = false, want true")
	}
}

func TestGroupReplyToSomeoneElse(t *testing.T) {
	t.Parallel()

	msg := groupMsg("lol no way")
	msg.ReplyTo = &telegram.Message{From: &telegram.User{Username: "random_user"}}
	if ShouldRespond(msg, "evelyn_bot", wakeNames) {
		t.Fatalf("ShouldRespond(reply to other user) = true, want false")
	}
}

func TestGroupReplyMissingSender(t *testing.T) {
	t.Parallel()

	msg := groupMsg("")
	msg.ReplyTo = &telegram.Message{}
	if ShouldRespond(msg, "evelyn_bot", wakeNames) {
		t.Fatalf("ShouldRespond(reply without sender) = true, want false")
	}
}

func TestNilMessage(t *testing.T) {
	t.Parallel()

	if ShouldRespond(nil, "evelyn_bot", wakeNames) {
		t.Fatalf("ShouldRespond(nil) = true, want false")
	}
}
