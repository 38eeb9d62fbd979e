// Package dto carries results across the application boundary.
package dto

import "time"

// Status classifies what happened to an inbound message.
type Status string

const (
	StatusOk                 Status = "ok"
	StatusRateLimited        Status = "rate_limited"
	StatusAllProvidersFailed Status = "all_providers_failed"
	StatusBanned             Status = "banned"
)

// Outcome is the result of handling one user message. Exactly one
// variant's fields are meaningful, selected by Status.
type Outcome struct {
	Status Status

	// StatusOk
	ReplyText  string
	ModelUsed  string
	TokensUsed int

	// StatusRateLimited
	CurrentCount   int
	MessageCeiling int
	RetryAfter     time.Duration

	// StatusRateLimited, to suggest an upgrade for free-tier users
	IsPremium bool
}

func OkOutcome(reply, model string, tokens int) *Outcome {
	return &Outcome{
		Status:     StatusOk,
		ReplyText:  reply,
		ModelUsed:  model,
		TokensUsed: tokens,
	}
}

func RateLimitedOutcome(current, ceiling int, retryAfter time.Duration, premium bool) *Outcome {
	return &Outcome{
		Status:         StatusRateLimited,
		CurrentCount:   current,
		MessageCeiling: ceiling,
		RetryAfter:     retryAfter,
		IsPremium:      premium,
	}
}

func AllProvidersFailedOutcome() *Outcome {
	return &Outcome{Status: StatusAllProvidersFailed}
}

func BannedOutcome() *Outcome {
	return &Outcome{Status: StatusBanned}
}
