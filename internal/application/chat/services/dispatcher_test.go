package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type fakeProvider struct {
	id      string
	caps    []aiprovider.Capability
	err     error
	calls   int
	blockOn context.Context
	trace   *[]string
}

func (f *fakeProvider) ID() string                           { return f.id }
func (f *fakeProvider) Capabilities() []aiprovider.Capability { return f.caps }

func (f *fakeProvider) Complete(ctx context.Context, _ []aiprovider.Message, _ string) (*aiprovider.Result, error) {
	f.calls++
	if f.trace != nil {
		*f.trace = append(*f.trace, f.id)
	}
	if f.blockOn != nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &aiprovider.Result{Text: "reply from " + f.id, TokensUsed: 10, ModelID: f.id}, nil
}

func (f *fakeProvider) Analyze(ctx context.Context, _ []byte, _, _ string) (*aiprovider.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &aiprovider.Result{Text: "vision from " + f.id, ModelID: f.id}, nil
}

func (f *fakeProvider) Transcribe(ctx context.Context, _ []byte, _ string) (*aiprovider.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &aiprovider.Result{Text: "transcript from " + f.id, ModelID: f.id}, nil
}

func textProvider(id string, err error) *fakeProvider {
	return &fakeProvider{id: id, caps: []aiprovider.Capability{aiprovider.CapabilityText}, err: err}
}

func newTestDispatcher(timeout time.Duration, providers ...aiprovider.Provider) *Dispatcher {
	return NewDispatcher(providers, timeout, logger.NewLogger())
}

func TestGenerate_FirstProviderSucceeds(t *testing.T) {
	first := textProvider("primary", nil)
	second := textProvider("backup", nil)
	d := newTestDispatcher(0, first, second)

	result, err := d.Generate(context.Background(), "", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "primary", result.ModelID)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestGenerate_FallsBackOnFailure(t *testing.T) {
	first := textProvider("primary", errors.New("quota exceeded"))
	second := textProvider("backup", nil)
	d := newTestDispatcher(0, first, second)

	result, err := d.Generate(context.Background(), "", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "backup", result.ModelID)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestGenerate_AllProvidersFailed(t *testing.T) {
	first := textProvider("primary", errors.New("boom"))
	second := textProvider("backup", errors.New("boom too"))
	d := newTestDispatcher(0, first, second)

	_, err := d.Generate(context.Background(), "", nil, "hello")
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestGenerate_ExhaustionAttemptsEachOnceInPriorityOrder(t *testing.T) {
	var attempts []string
	down := errors.New("unavailable")
	first := textProvider("flash", down)
	second := textProvider("flash-backup", down)
	third := textProvider("pro", down)
	first.trace, second.trace, third.trace = &attempts, &attempts, &attempts
	d := newTestDispatcher(0, first, second, third)

	_, err := d.Generate(context.Background(), "", nil, "hello")
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, []string{"flash", "flash-backup", "pro"}, attempts)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}

func TestGenerate_PreferredProviderTriedFirst(t *testing.T) {
	first := textProvider("primary", nil)
	second := textProvider("backup", nil)
	d := newTestDispatcher(0, first, second)

	result, err := d.Generate(context.Background(), "backup", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "backup", result.ModelID)
	assert.Equal(t, 0, first.calls)
}

func TestGenerate_PreferredFailureStillFallsBack(t *testing.T) {
	first := textProvider("primary", nil)
	second := textProvider("backup", errors.New("down"))
	d := newTestDispatcher(0, first, second)

	result, err := d.Generate(context.Background(), "backup", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "primary", result.ModelID)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, first.calls)
}

func TestGenerate_UnknownPreferredIgnored(t *testing.T) {
	first := textProvider("primary", nil)
	d := newTestDispatcher(0, first)

	result, err := d.Generate(context.Background(), "nonexistent", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "primary", result.ModelID)
}

func TestGenerate_AttemptTimeoutMovesToNextProvider(t *testing.T) {
	slow := &fakeProvider{
		id:      "slow",
		caps:    []aiprovider.Capability{aiprovider.CapabilityText},
		blockOn: context.Background(),
	}
	fast := textProvider("fast", nil)
	d := newTestDispatcher(20*time.Millisecond, slow, fast)

	result, err := d.Generate(context.Background(), "", nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "fast", result.ModelID)
}

func TestGenerate_ParentContextCancelled(t *testing.T) {
	first := textProvider("primary", nil)
	d := newTestDispatcher(0, first)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Generate(ctx, "", nil, "hello")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, first.calls)
}

func TestAnalyze_SkipsTextOnlyProviders(t *testing.T) {
	textOnly := textProvider("text-only", nil)
	vision := &fakeProvider{
		id:   "vision",
		caps: []aiprovider.Capability{aiprovider.CapabilityText, aiprovider.CapabilityVision},
	}
	d := newTestDispatcher(0, textOnly, vision)

	result, err := d.Analyze(context.Background(), "", []byte{1}, "image/jpeg", "what is this")
	require.NoError(t, err)
	assert.Equal(t, "vision", result.ModelID)
	assert.Equal(t, 0, textOnly.calls)
}

func TestAnalyze_NoEligibleProviders(t *testing.T) {
	textOnly := textProvider("text-only", nil)
	d := newTestDispatcher(0, textOnly)

	_, err := d.Analyze(context.Background(), "", []byte{1}, "image/jpeg", "")
	require.ErrorIs(t, err, aiprovider.ErrCapabilityUnsupported)
}

func TestTranscribe_UsesAudioCapableProvider(t *testing.T) {
	audio := &fakeProvider{
		id:   "audio",
		caps: []aiprovider.Capability{aiprovider.CapabilityText, aiprovider.CapabilityAudio},
	}
	d := newTestDispatcher(0, textProvider("text-only", nil), audio)

	result, err := d.Transcribe(context.Background(), "", []byte{1}, "audio/ogg")
	require.NoError(t, err)
	assert.Equal(t, "audio", result.ModelID)
}

func TestHasProvider(t *testing.T) {
	d := newTestDispatcher(0, textProvider("primary", nil))

	assert.True(t, d.HasProvider("primary"))
	assert.False(t, d.HasProvider("other"))
}

func TestProviders_PreservesOrder(t *testing.T) {
	d := newTestDispatcher(0, textProvider("a", nil), textProvider("b", nil), textProvider("c", nil))
	assert.Equal(t, []string{"a", "b", "c"}, d.Providers())
}
