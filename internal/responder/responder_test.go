package responder

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/replituseonly8-lang/Evelyn/internal/stats"
	"github.com/replituseonly8-lang/Evelyn/llm"
	"github.com/replituseonly8-lang/Evelyn/providers/openai"
)

type scriptedClient struct {
	script []func() (llm.Result, error)
	reqs   []llm.Request
}

func (c *scriptedClient) Chat(_ context.Context, req llm.Request) (llm.Result, error) {
	c.reqs = append(c.reqs, req)
	if len(c.script) == 0 {
		return llm.Result{}, errors.New("script exhausted")
	}
	next := c.script[0]
	c.script = c.script[1:]
	return next()
}

func ok(text string) func() (llm.Result, error) {
	return func() (llm.Result, error) { return llm.Result{Text: text}, nil }
}

func fail(err error) func() (llm.Result, error) {
	return func() (llm.Result, error) { return llm.Result{}, err }
}

func newTestResponder(client llm.Client, counters *stats.Counters) *Responder {
	r := New(client, "gpt-4o", counters, slog.Default())
	return r
}

func TestReplySuccess(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){ok("periodt bestie")}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	if got != "periodt bestie" {
		t.Fatalf("Reply() = %q, want completion text", got)
	}
	if snap := counters.Snapshot(); snap.APICalls != 1 {
		t.Fatalf("APICalls = %d, want 1", snap.APICalls)
	}
	if len(client.reqs) != 1 {
		t.Fatalf("call count = %d, want 1", len(client.reqs))
	}
	if client.reqs[0].MaxTokens != DefaultMaxTokens {
		t.Fatalf("MaxTokens = %d, want %d", client.reqs[0].MaxTokens, DefaultMaxTokens)
	}
}

func TestReplyTimeoutThenRetrySuccess(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){
		fail(context.DeadlineExceeded),
		ok("bet"),
	}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), nil)
	if got != "bet" {
		t.Fatalf("Reply() = %q, want retry text", got)
	}
	if snap := counters.Snapshot(); snap.APICalls != 1 {
		t.Fatalf("APICalls = %d, want exactly 1 (not counted twice)", snap.APICalls)
	}
	if len(client.reqs) != 2 {
		t.Fatalf("call count = %d, want 2", len(client.reqs))
	}
	if client.reqs[1].MaxTokens != RetryMaxTokens {
		t.Fatalf("retry MaxTokens = %d, want %d", client.reqs[1].MaxTokens, RetryMaxTokens)
	}
}

func TestReplyTimeoutTwice(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){
		fail(context.DeadlineExceeded),
		fail(context.DeadlineExceeded),
	}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), nil)
	if got != FallbackTimeout {
		t.Fatalf("Reply() = %q, want %q", got, FallbackTimeout)
	}
	if len(client.reqs) != 2 {
		t.Fatalf("call count = %d, want 2 (never a third attempt)", len(client.reqs))
	}
	if snap := counters.Snapshot(); snap.APICalls != 0 {
		t.Fatalf("APICalls = %d, want 0", snap.APICalls)
	}
}

func TestReplyBadStatusNotRetried(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){
		fail(&openai.StatusError{StatusCode: 500, Body: "upstream sad"}),
	}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), nil)
	if got != FallbackBadStatus {
		t.Fatalf("Reply() = %q, want %q", got, FallbackBadStatus)
	}
	if len(client.reqs) != 1 {
		t.Fatalf("call count = %d, want 1 (bad status is not retried)", len(client.reqs))
	}
}

func TestReplyTransportFailure(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){
		fail(&url.Error{Op: "Post", URL: "http://api", Err: errors.New("connection refused")}),
	}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), nil)
	if got != FallbackUnreachable {
		t.Fatalf("Reply() = %q, want %q", got, FallbackUnreachable)
	}
	if len(client.reqs) != 1 {
		t.Fatalf("call count = %d, want 1", len(client.reqs))
	}
}

func TestReplyUnexpectedFailure(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{script: []func() (llm.Result, error){
		fail(errors.New("empty choices")),
	}}
	counters := stats.NewUnregistered()
	got := newTestResponder(client, counters).Reply(context.Background(), nil)
	if got != FallbackGeneric {
		t.Fatalf("Reply() = %q, want %q", got, FallbackGeneric)
	}
	if snap := counters.Snapshot(); snap.Errors != 1 {
		t.Fatalf("Errors = %d, want 1", snap.Errors)
	}
}
