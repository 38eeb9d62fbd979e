// Package aiprovider defines the port a chat model backend must satisfy.
package aiprovider

import (
	"context"
	"errors"
)

// Capability names a modality a provider can handle.
type Capability string

const (
	CapabilityText   Capability = "text"
	CapabilityVision Capability = "vision"
	CapabilityAudio  Capability = "audio"
)

// ErrCapabilityUnsupported is returned when a provider is asked for a
// modality it does not advertise.
var ErrCapabilityUnsupported = errors.New("capability unsupported by provider")

// Role of a chat turn as seen by the model.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of model context.
type Message struct {
	Role    Role
	Content string
}

// Result is what a successful model call produced.
type Result struct {
	Text       string
	TokensUsed int
	ModelID    string
}

// Provider is a single model backend. Implementations must be safe for
// concurrent use.
type Provider interface {
	// ID identifies the provider for preference matching and logging.
	ID() string

	// Capabilities lists the modalities this provider accepts.
	Capabilities() []Capability

	// Complete generates a text reply for the given conversation context.
	Complete(ctx context.Context, history []Message, prompt string) (*Result, error)

	// Analyze describes an image, guided by an optional caption.
	Analyze(ctx context.Context, imageData []byte, mimeType, caption string) (*Result, error)

	// Transcribe converts voice audio to text.
	Transcribe(ctx context.Context, audioData []byte, mimeType string) (*Result, error)
}

// Supports reports whether the provider advertises the capability.
func Supports(p Provider, c Capability) bool {
	for _, have := range p.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}
