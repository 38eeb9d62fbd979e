package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/goroutine"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// UpdateHandler processes one Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update *Update)
}

// PollingService long-polls getUpdates and fans work out to workers.
// Updates are bucketed by sender ID so one user's messages stay ordered
// while different users are handled concurrently.
type PollingService struct {
	botService   *BotService
	handler      UpdateHandler
	logger       logger.Interface
	pollTimeout  int
	workerCount  int
	lastUpdateID int64

	stopChan   chan struct{}
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	runningMu  sync.Mutex
	isRunning  bool
}

func NewPollingService(botService *BotService, handler UpdateHandler, pollTimeout, workerCount int, log logger.Interface) *PollingService {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	if workerCount <= 0 {
		workerCount = 4
	}
	return &PollingService{
		botService:  botService,
		handler:     handler,
		logger:      log,
		pollTimeout: pollTimeout,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (s *PollingService) Start(ctx context.Context) error {
	s.runningMu.Lock()
	if s.isRunning {
		s.runningMu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	pollCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.runningMu.Unlock()

	// A lingering webhook blocks getUpdates.
	if err := s.botService.DeleteWebhook(); err != nil {
		s.logger.Warnw("failed to delete webhook before polling", "error", err)
	}

	s.logger.Infow("starting polling",
		"timeout", s.pollTimeout,
		"workers", s.workerCount,
	)

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "telegram-poll-loop", func() {
		defer s.wg.Done()
		s.pollLoop(pollCtx)
	})

	return nil
}

func (s *PollingService) Stop() {
	s.runningMu.Lock()
	if !s.isRunning {
		s.runningMu.Unlock()
		return
	}
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.runningMu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	s.logger.Infow("polling stopped")
}

func (s *PollingService) pollLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		default:
			s.poll(ctx)
		}
	}
}

func (s *PollingService) poll(ctx context.Context) {
	offset := int64(0)
	if s.lastUpdateID > 0 {
		offset = s.lastUpdateID + 1
	}

	updates, err := s.botService.GetUpdates(ctx, offset, s.pollTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Errorw("failed to get updates", "error", err)
		select {
		case <-ctx.Done():
		case <-s.stopChan:
		case <-time.After(5 * time.Second):
		}
		return
	}

	if len(updates) == 0 {
		return
	}

	buckets := make([][]Update, s.workerCount)
	var maxUpdateID int64
	for _, u := range updates {
		idx := s.senderAffinity(&u)
		buckets[idx] = append(buckets[idx], u)
		if u.UpdateID > maxUpdateID {
			maxUpdateID = u.UpdateID
		}
	}

	var batchWg sync.WaitGroup
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		batchWg.Add(1)
		workerBucket := bucket
		goroutine.SafeGo(s.logger, "telegram-worker", func() {
			defer batchWg.Done()
			for i := range workerBucket {
				if ctx.Err() != nil {
					return
				}
				s.handler.HandleUpdate(ctx, &workerBucket[i])
			}
		})
	}
	batchWg.Wait()

	// Commit the offset only after the whole batch is handled so a crash
	// mid-batch does not drop updates.
	s.lastUpdateID = maxUpdateID
}

func (s *PollingService) senderAffinity(u *Update) int {
	var senderID int64
	switch {
	case u.Message != nil && u.Message.From != nil:
		senderID = u.Message.From.ID
	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		senderID = u.CallbackQuery.From.ID
	case u.PreCheckoutQuery != nil && u.PreCheckoutQuery.From != nil:
		senderID = u.PreCheckoutQuery.From.ID
	}
	if senderID < 0 {
		senderID = -senderID
	}
	return int(senderID % int64(s.workerCount))
}
