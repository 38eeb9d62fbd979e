package bot

import (
	"context"
	"fmt"
	"strconv"

	subusecases "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/application/subscription/usecases"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/domain/subscription"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/telegram"
)

// Admin commands answer in English only; there is exactly one admin.
func (r *Router) handleAdminCommand(ctx context.Context, msg *telegram.Message, command string, args []string) {
	if !r.isAdmin(msg.From.ID) {
		// Pretend the command does not exist.
		r.send(msg.Chat.ID, "🤔 Unknown command. /help lists what I can do.")
		return
	}

	switch command {
	case "ban":
		r.adminBan(ctx, msg, args)
	case "unban":
		r.adminUnban(ctx, msg, args)
	case "grant":
		r.adminGrant(ctx, msg, args)
	case "revoke":
		r.adminRevoke(ctx, msg, args)
	case "stats":
		r.adminStats(ctx, msg)
	}
}

func (r *Router) adminBan(ctx context.Context, msg *telegram.Message, args []string) {
	targetID, ok := r.parseTargetID(msg.Chat.ID, args, "/ban <user_id>")
	if !ok {
		return
	}

	if err := r.usecases.BanUser.Execute(ctx, targetID); err != nil {
		r.send(msg.Chat.ID, fmt.Sprintf("❌ Ban failed: %v", err))
		return
	}

	// Drop any tracked quota so an unban starts clean.
	r.limiter.ClearUser(targetID)
	r.send(msg.Chat.ID, fmt.Sprintf("✅ User <code>%d</code> banned.", targetID))
}

func (r *Router) adminUnban(ctx context.Context, msg *telegram.Message, args []string) {
	targetID, ok := r.parseTargetID(msg.Chat.ID, args, "/unban <user_id>")
	if !ok {
		return
	}

	if err := r.usecases.UnbanUser.Execute(ctx, targetID); err != nil {
		r.send(msg.Chat.ID, fmt.Sprintf("❌ Unban failed: %v", err))
		return
	}
	r.send(msg.Chat.ID, fmt.Sprintf("✅ User <code>%d</code> unbanned.", targetID))
}

func (r *Router) adminGrant(ctx context.Context, msg *telegram.Message, args []string) {
	if len(args) < 1 {
		r.send(msg.Chat.ID, "Usage: /grant <user_id> [monthly|yearly]")
		return
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.send(msg.Chat.ID, "Usage: /grant <user_id> [monthly|yearly]")
		return
	}

	tier := subscription.TierMonthly
	if len(args) > 1 {
		parsed, err := subscription.ParseTier(args[1])
		if err != nil || !parsed.IsPaid() {
			r.send(msg.Chat.ID, "Tier must be monthly or yearly.")
			return
		}
		tier = parsed
	}

	sub, err := r.usecases.GrantPremium.Execute(ctx, subusecases.GrantPremiumCommand{
		UserID: targetID,
		Tier:   tier,
	})
	if err != nil {
		r.send(msg.Chat.ID, fmt.Sprintf("❌ Grant failed: %v", err))
		return
	}

	r.send(msg.Chat.ID, fmt.Sprintf("✅ Granted %s to <code>%d</code> until %s.",
		tier.String(), targetID, sub.ExpiresAt().Format("2006-01-02")))
}

func (r *Router) adminRevoke(ctx context.Context, msg *telegram.Message, args []string) {
	targetID, ok := r.parseTargetID(msg.Chat.ID, args, "/revoke <user_id>")
	if !ok {
		return
	}

	if err := r.usecases.RevokeSubscription.Execute(ctx, targetID); err != nil {
		r.send(msg.Chat.ID, fmt.Sprintf("❌ Revoke failed: %v", err))
		return
	}
	r.send(msg.Chat.ID, fmt.Sprintf("✅ Subscription revoked for <code>%d</code>.", targetID))
}

func (r *Router) adminStats(ctx context.Context, msg *telegram.Message) {
	report, err := r.usecases.GetBotStats.Execute(ctx)
	if err != nil {
		r.send(msg.Chat.ID, fmt.Sprintf("❌ Stats failed: %v", err))
		return
	}

	r.send(msg.Chat.ID, fmt.Sprintf(
		"📈 <b>Bot stats</b>\n\n"+
			"<b>Today</b>\nMessages: %d\nNew users: %d\nTokens: %d\nRevenue: %d ⭐\n\n"+
			"<b>All time</b>\nUsers: %d\nMessages: %d\nTokens: %d\nRevenue: %d ⭐",
		report.Today.TotalMessages, report.Today.NewUsers, report.Today.TotalTokens, report.Today.RevenueStars,
		report.Totals.TotalUsers, report.Totals.TotalMessages, report.Totals.TotalTokens, report.Totals.RevenueStars,
	))
}

func (r *Router) parseTargetID(chatID int64, args []string, usage string) (int64, bool) {
	if len(args) < 1 {
		r.send(chatID, "Usage: "+usage)
		return 0, false
	}
	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || targetID == 0 {
		r.send(chatID, "Usage: "+usage)
		return 0, false
	}
	return targetID, true
}
