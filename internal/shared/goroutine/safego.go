// Package goroutine provides a panic-safe goroutine launcher.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

// SafeGo launches fn in a goroutine and logs any panic with its stack
// instead of crashing the process. Bot handlers run user-controlled input,
// so a single bad update must never take the poller down.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
