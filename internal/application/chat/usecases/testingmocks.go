package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/stats"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/ratelimit"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) SetPremiumFlag(ctx context.Context, telegramID int64, premium bool) error {
	args := m.Called(ctx, telegramID, premium)
	return args.Error(0)
}

func (m *mockUserRepo) RecordUsage(ctx context.Context, telegramID int64, tokens int) error {
	args := m.Called(ctx, telegramID, tokens)
	return args.Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockConversationRepo struct {
	mock.Mock
}

func (m *mockConversationRepo) Append(ctx context.Context, msg *conversation.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockConversationRepo) RecentByUserID(ctx context.Context, userID int64, limit int) ([]*conversation.Message, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversation.Message), args.Error(1)
}

func (m *mockConversationRepo) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) IncrementMessages(ctx context.Context, count, tokens int64) error {
	args := m.Called(ctx, count, tokens)
	return args.Error(0)
}

func (m *mockStatsRepo) IncrementNewUsers(ctx context.Context, count int64) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

func (m *mockStatsRepo) IncrementRevenue(ctx context.Context, starsAmount int64) error {
	args := m.Called(ctx, starsAmount)
	return args.Error(0)
}

func (m *mockStatsRepo) GetToday(ctx context.Context) (*stats.DailyStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.DailyStats), args.Error(1)
}

func (m *mockStatsRepo) GetTotals(ctx context.Context) (*stats.Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.Totals), args.Error(1)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Execute(ctx context.Context, userID int64) (*subscription.Entitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Entitlement), args.Error(1)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Check(userID int64, ceiling int) ratelimit.Decision {
	args := m.Called(userID, ceiling)
	return args.Get(0).(ratelimit.Decision)
}

func (m *mockLimiter) Allow(userID int64, ceiling int) ratelimit.Decision {
	args := m.Called(userID, ceiling)
	return args.Get(0).(ratelimit.Decision)
}

func (m *mockLimiter) ResetAfter(userID int64) time.Duration {
	args := m.Called(userID)
	return args.Get(0).(time.Duration)
}

func (m *mockLimiter) ClearUser(userID int64) {
	m.Called(userID)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Generate(ctx context.Context, preferredID string, history []aiprovider.Message, prompt string) (*aiprovider.Result, error) {
	args := m.Called(ctx, preferredID, history, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aiprovider.Result), args.Error(1)
}

func (m *mockDispatcher) Analyze(ctx context.Context, preferredID string, imageData []byte, mimeType, caption string) (*aiprovider.Result, error) {
	args := m.Called(ctx, preferredID, imageData, mimeType, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aiprovider.Result), args.Error(1)
}

func (m *mockDispatcher) Transcribe(ctx context.Context, preferredID string, audioData []byte, mimeType string) (*aiprovider.Result, error) {
	args := m.Called(ctx, preferredID, audioData, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*aiprovider.Result), args.Error(1)
}
