package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/aiprovider"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/dto"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/chat/services"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/conversation"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/user"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/ratelimit"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

type messageFixture struct {
	userRepo   *mockUserRepo
	convRepo   *mockConversationRepo
	statsRepo  *mockStatsRepo
	resolver   *mockResolver
	limiter    *mockLimiter
	dispatcher *mockDispatcher
	uc         *HandleMessageUseCase
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	f := &messageFixture{
		userRepo:   new(mockUserRepo),
		convRepo:   new(mockConversationRepo),
		statsRepo:  new(mockStatsRepo),
		resolver:   new(mockResolver),
		limiter:    new(mockLimiter),
		dispatcher: new(mockDispatcher),
	}
	f.uc = NewHandleMessageUseCase(
		f.userRepo, f.convRepo, f.statsRepo,
		f.resolver, f.limiter, f.dispatcher,
		10, logger.NewLogger(),
	)
	return f
}

func testUser(t *testing.T, id int64, banned bool) *user.User {
	t.Helper()
	u, err := user.NewUser(id, "tester", "Test", "User", "en")
	require.NoError(t, err)
	if banned {
		u.Ban()
	}
	return u
}

func freeEntitlement(t *testing.T) *subscription.Entitlement {
	t.Helper()
	plans, err := subscription.NewPlanTable(subscription.DefaultPlanTableParams())
	require.NoError(t, err)
	return subscription.FreeEntitlement(plans)
}

func allowed(current, ceiling int) ratelimit.Decision {
	return ratelimit.Decision{Allowed: true, Current: current, Ceiling: ceiling}
}

func denied(current, ceiling int, retry time.Duration) ratelimit.Decision {
	return ratelimit.Decision{Allowed: false, Current: current, Ceiling: ceiling, RetryAfter: retry}
}

func TestHandleMessage_HappyPath(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(allowed(5, 20))
	f.convRepo.On("RecentByUserID", mock.Anything, int64(42), 10).
		Return([]*conversation.Message{}, nil)
	f.dispatcher.On("Generate", mock.Anything, "", mock.Anything, "hello").
		Return(&aiprovider.Result{Text: "hi there", TokensUsed: 12, ModelID: "gemini-flash"}, nil)
	f.convRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("RecordUsage", mock.Anything, int64(42), 12).Return(nil)
	f.statsRepo.On("IncrementMessages", mock.Anything, int64(1), int64(12)).Return(nil)

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusOk, outcome.Status)
	assert.Equal(t, "hi there", outcome.ReplyText)
	assert.Equal(t, "gemini-flash", outcome.ModelUsed)
	assert.Equal(t, 12, outcome.TokensUsed)

	// Both conversation turns are persisted.
	f.convRepo.AssertNumberOfCalls(t, "Append", 2)
}

func TestHandleMessage_BannedUserShortCircuits(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, true), nil)

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusBanned, outcome.Status)

	f.resolver.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	f.limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_RateLimited(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(denied(20, 20, 17*time.Minute))

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusRateLimited, outcome.Status)
	assert.Equal(t, 20, outcome.CurrentCount)
	assert.Equal(t, 20, outcome.MessageCeiling)
	assert.Equal(t, 17*time.Minute, outcome.RetryAfter)
	assert.False(t, outcome.IsPremium)

	f.dispatcher.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.convRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestHandleMessage_AllProvidersFailed(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(allowed(5, 20))
	f.convRepo.On("RecentByUserID", mock.Anything, int64(42), 10).
		Return([]*conversation.Message{}, nil)
	f.dispatcher.On("Generate", mock.Anything, "", mock.Anything, "hello").
		Return(nil, services.ErrAllProvidersFailed)

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusAllProvidersFailed, outcome.Status)

	f.convRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "RecordUsage", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessage_ResolverErrorPropagates(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(nil, errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.Error(t, err)

	f.limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything)
}

func TestHandleMessage_HistoryErrorStillReplies(t *testing.T) {
	f := newMessageFixture(t)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(allowed(1, 20))
	f.convRepo.On("RecentByUserID", mock.Anything, int64(42), 10).
		Return(nil, errors.New("read failed"))
	f.dispatcher.On("Generate", mock.Anything, "", mock.Anything, "hello").
		Return(&aiprovider.Result{Text: "hi", TokensUsed: 3, ModelID: "gemini-flash"}, nil)
	f.convRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("RecordUsage", mock.Anything, int64(42), 3).Return(nil)
	f.statsRepo.On("IncrementMessages", mock.Anything, int64(1), int64(3)).Return(nil)

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, dto.StatusOk, outcome.Status)
}

func TestHandleMessage_PreferredModelForwarded(t *testing.T) {
	f := newMessageFixture(t)

	u := testUser(t, 42, false)
	u.SetPreferredModel("gemini-pro")
	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(u, nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(allowed(1, 20))
	f.convRepo.On("RecentByUserID", mock.Anything, int64(42), 10).
		Return([]*conversation.Message{}, nil)
	f.dispatcher.On("Generate", mock.Anything, "gemini-pro", mock.Anything, "hello").
		Return(&aiprovider.Result{Text: "hi", TokensUsed: 3, ModelID: "gemini-pro"}, nil)
	f.convRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("RecordUsage", mock.Anything, int64(42), 3).Return(nil)
	f.statsRepo.On("IncrementMessages", mock.Anything, int64(1), int64(3)).Return(nil)

	outcome, err := f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-pro", outcome.ModelUsed)
}

func TestHandleMessage_HistoryRolesMapped(t *testing.T) {
	f := newMessageFixture(t)

	userTurn, err := conversation.NewMessage(42, conversation.RoleUser, "earlier question")
	require.NoError(t, err)
	botTurn, err := conversation.NewAssistantMessage(42, "earlier answer", "gemini-flash", 5)
	require.NoError(t, err)

	f.userRepo.On("GetByTelegramID", mock.Anything, int64(42)).Return(testUser(t, 42, false), nil)
	f.resolver.On("Execute", mock.Anything, int64(42)).Return(freeEntitlement(t), nil)
	f.limiter.On("Allow", int64(42), 20).Return(allowed(2, 20))
	f.convRepo.On("RecentByUserID", mock.Anything, int64(42), 10).
		Return([]*conversation.Message{userTurn, botTurn}, nil)

	var captured []aiprovider.Message
	f.dispatcher.On("Generate", mock.Anything, "", mock.Anything, "followup").
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]aiprovider.Message)
		}).
		Return(&aiprovider.Result{Text: "ok", TokensUsed: 1, ModelID: "gemini-flash"}, nil)
	f.convRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("RecordUsage", mock.Anything, int64(42), 1).Return(nil)
	f.statsRepo.On("IncrementMessages", mock.Anything, int64(1), int64(1)).Return(nil)

	_, err = f.uc.Execute(context.Background(), HandleMessageCommand{UserID: 42, Text: "followup"})
	require.NoError(t, err)

	require.Len(t, captured, 2)
	assert.Equal(t, aiprovider.RoleUser, captured[0].Role)
	assert.Equal(t, "earlier question", captured[0].Content)
	assert.Equal(t, aiprovider.RoleAssistant, captured[1].Role)
	assert.Equal(t, "earlier answer", captured[1].Content)
}
