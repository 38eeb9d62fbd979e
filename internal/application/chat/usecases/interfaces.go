package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/ratelimit"
)

// ErrFeatureNotEntitled is returned when a user asks for a modality their
// tier does not include.
var ErrFeatureNotEntitled = errors.New("feature not included in current tier")

// RateLimiter is the admission port. Allow must atomically check and
// record so concurrent requests cannot slip past the ceiling.
type RateLimiter interface {
	Check(userID int64, ceiling int) ratelimit.Decision
	Allow(userID int64, ceiling int) ratelimit.Decision
	ResetAfter(userID int64) time.Duration
	ClearUser(userID int64)
}

// EntitlementResolver answers what a user may do right now.
type EntitlementResolver interface {
	Execute(ctx context.Context, userID int64) (*subscription.Entitlement, error)
}

// ModelDispatcher runs model calls with provider fallback.
type ModelDispatcher interface {
	Generate(ctx context.Context, preferredID string, history []aiprovider.Message, prompt string) (*aiprovider.Result, error)
	Analyze(ctx context.Context, preferredID string, imageData []byte, mimeType, caption string) (*aiprovider.Result, error)
	Transcribe(ctx context.Context, preferredID string, audioData []byte, mimeType string) (*aiprovider.Result, error)
}
