// Package services holds domain services for the chat context.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// ErrAllProvidersFailed signals that every eligible backend was tried
// and none produced a reply.
var ErrAllProvidersFailed = errors.New("all model providers failed")

// Dispatcher tries model backends in priority order until one succeeds.
// A user's preferred provider, when set and eligible, is tried first;
// remaining providers keep their configured order.
type Dispatcher struct {
	providers      []aiprovider.Provider
	attemptTimeout time.Duration
	logger         logger.Interface
}

func NewDispatcher(providers []aiprovider.Provider, attemptTimeout time.Duration, log logger.Interface) *Dispatcher {
	return &Dispatcher{
		providers:      providers,
		attemptTimeout: attemptTimeout,
		logger:         log,
	}
}

// Providers returns the configured provider IDs in priority order.
func (d *Dispatcher) Providers() []string {
	ids := make([]string, len(d.providers))
	for i, p := range d.providers {
		ids[i] = p.ID()
	}
	return ids
}

// HasProvider reports whether a provider with the given ID is configured.
func (d *Dispatcher) HasProvider(id string) bool {
	for _, p := range d.providers {
		if p.ID() == id {
			return true
		}
	}
	return false
}

// Generate produces a text reply, falling back across providers.
func (d *Dispatcher) Generate(ctx context.Context, preferredID string, history []aiprovider.Message, prompt string) (*aiprovider.Result, error) {
	return d.dispatch(ctx, preferredID, aiprovider.CapabilityText, func(ctx context.Context, p aiprovider.Provider) (*aiprovider.Result, error) {
		return p.Complete(ctx, history, prompt)
	})
}

// Analyze describes an image, falling back across vision-capable providers.
func (d *Dispatcher) Analyze(ctx context.Context, preferredID string, imageData []byte, mimeType, caption string) (*aiprovider.Result, error) {
	return d.dispatch(ctx, preferredID, aiprovider.CapabilityVision, func(ctx context.Context, p aiprovider.Provider) (*aiprovider.Result, error) {
		return p.Analyze(ctx, imageData, mimeType, caption)
	})
}

// Transcribe converts voice audio to text via audio-capable providers.
func (d *Dispatcher) Transcribe(ctx context.Context, preferredID string, audioData []byte, mimeType string) (*aiprovider.Result, error) {
	return d.dispatch(ctx, preferredID, aiprovider.CapabilityAudio, func(ctx context.Context, p aiprovider.Provider) (*aiprovider.Result, error) {
		return p.Transcribe(ctx, audioData, mimeType)
	})
}

type attemptFunc func(ctx context.Context, p aiprovider.Provider) (*aiprovider.Result, error)

func (d *Dispatcher) dispatch(ctx context.Context, preferredID string, cap aiprovider.Capability, attempt attemptFunc) (*aiprovider.Result, error) {
	eligible := d.orderedEligible(preferredID, cap)
	if len(eligible) == 0 {
		return nil, aiprovider.ErrCapabilityUnsupported
	}

	var lastErr error
	for _, p := range eligible {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := d.tryOne(ctx, p, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		d.logger.Warnw("provider attempt failed, falling back",
			"provider", p.ID(),
			"error", err,
		)
	}

	d.logger.Errorw("all providers exhausted",
		"attempted", len(eligible),
		"last_error", lastErr,
	)
	return nil, ErrAllProvidersFailed
}

func (d *Dispatcher) tryOne(ctx context.Context, p aiprovider.Provider, attempt attemptFunc) (*aiprovider.Result, error) {
	attemptCtx := ctx
	if d.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, d.attemptTimeout)
		defer cancel()
	}
	return attempt(attemptCtx, p)
}

func (d *Dispatcher) orderedEligible(preferredID string, cap aiprovider.Capability) []aiprovider.Provider {
	ordered := make([]aiprovider.Provider, 0, len(d.providers))

	if preferredID != "" {
		for _, p := range d.providers {
			if p.ID() == preferredID && aiprovider.Supports(p, cap) {
				ordered = append(ordered, p)
				break
			}
		}
	}

	for _, p := range d.providers {
		if p.ID() == preferredID {
			continue
		}
		if aiprovider.Supports(p, cap) {
			ordered = append(ordered, p)
		}
	}

	return ordered
}
