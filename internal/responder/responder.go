// Package responder turns an assembled prompt into display-ready reply
// text. It owns the timeout budget, the single timeout retry, and the
// in-character fallback lines. Reply never returns an error: whatever
// happens upstream, the user sees something the persona could have said.
package responder

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/replituseonly8-lang/Evelyn/internal/stats"
	"github.com/replituseonly8-lang/Evelyn/llm"
	"github.com/replituseonly8-lang/Evelyn/providers/openai"
)

const (
	// DefaultMaxTokens keeps replies short, as the persona demands.
	DefaultMaxTokens = 150
	// RetryMaxTokens is the reduced ceiling for the one timeout retry.
	RetryMaxTokens = 50
	// DefaultTimeout is the wall-clock budget per attempt.
	DefaultTimeout = 50 * time.Second

	temperature = 0.8
	topP        = 0.9
)

// The fallback lines are part of the behavioral contract: failures leak
// personality, never raw errors.
const (
	FallbackBadStatus   = "ngl the AI is being weird rn, try again in a sec"
	FallbackTimeout     = "oop API is taking forever, try again bestie"
	FallbackUnreachable = "can't reach the AI rn fr, network issues"
	FallbackGeneric     = "something went wrong but we're good fr, try again"
)

type Responder struct {
	client   llm.Client
	model    string
	counters *stats.Counters
	logger   *slog.Logger

	timeout        time.Duration
	maxTokens      int
	retryMaxTokens int
}

func New(client llm.Client, model string, counters *stats.Counters, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		client:         client,
		model:          model,
		counters:       counters,
		logger:         logger,
		timeout:        DefaultTimeout,
		maxTokens:      DefaultMaxTokens,
		retryMaxTokens: RetryMaxTokens,
	}
}

// Reply resolves the prompt to reply text. On a timeout it retries exactly
// once with the reduced token ceiling under a fresh budget; every other
// failure maps straight to its fallback line.
func (r *Responder) Reply(ctx context.Context, msgs []llm.Message) string {
	start := time.Now()
	res, err := r.chatOnce(ctx, msgs, r.maxTokens)
	if err == nil {
		r.counters.APICall()
		r.logger.Info("completion ok", "duration", time.Since(start).String(), "tokens", res.Usage.TotalTokens)
		return res.Text
	}

	var statusErr *openai.StatusError
	switch {
	case isTimeout(err):
		r.logger.Warn("completion timed out; retrying with shorter ceiling", "timeout", r.timeout.String())
		retryRes, retryErr := r.chatOnce(ctx, msgs, r.retryMaxTokens)
		if retryErr == nil {
			r.counters.APICall()
			r.logger.Info("completion retry ok", "duration", time.Since(start).String())
			return retryRes.Text
		}
		r.logger.Warn("completion retry failed", "error", retryErr)
		return FallbackTimeout

	case errors.As(err, &statusErr):
		r.logger.Error("completion rejected", "status", statusErr.StatusCode, "body", statusErr.Body)
		return FallbackBadStatus

	case isTransport(err):
		r.logger.Error("completion endpoint unreachable", "error", err)
		return FallbackUnreachable

	default:
		r.counters.Error()
		r.logger.Error("completion failed", "error", err)
		return FallbackGeneric
	}
}

func (r *Responder) chatOnce(ctx context.Context, msgs []llm.Message, maxTokens int) (llm.Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.Chat(attemptCtx, llm.Request{
		Model:       r.model,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "client.timeout exceeded")
}

func isTransport(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
