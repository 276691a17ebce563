// Package notifier delivers billing events to residents through the
// Telegram Bot API.
package notifier

import (
	"context"

	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/identity"
	"github.com/housebill/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TelegramNotifier fans billing events out to the residents' linked
// Telegram chats. Residents without a linked chat are skipped.
type TelegramNotifier struct {
	client *TelegramClient
	symbol string
	logger *zap.Logger
}

var _ appbilling.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates a notifier sending through the given client
func NewTelegramNotifier(client *TelegramClient, currency config.CurrencyConfig, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		client: client,
		symbol: currency.Symbol,
		logger: logger,
	}
}

// BillIssued announces the new bill to every shareholder with a linked
// chat, each message carrying that resident's own share section.
func (n *TelegramNotifier) BillIssued(ctx context.Context, bill *billing.Bill) {
	for _, share := range bill.Shares {
		if share.User == nil || !share.User.HasTelegramChat() {
			continue
		}

		msg := BillIssuedMessage(bill, share, n.symbol)
		if err := n.client.SendMessage(ctx, share.User.TelegramChatID, msg); err != nil {
			n.logger.Warn("Failed to deliver bill notification",
				zap.String("bill_reference", bill.Reference),
				zap.String("user_id", share.UserID.String()),
				zap.Error(err))
		}
	}
}

// PaymentRecorded confirms the payment to the paying resident
func (n *TelegramNotifier) PaymentRecorded(ctx context.Context, bill *billing.Bill, share *billing.BillShare, payment *billing.Payment) {
	if share.User == nil || !share.User.HasTelegramChat() {
		return
	}

	msg := PaymentReceivedMessage(bill, share, payment, n.symbol)
	if err := n.client.SendMessage(ctx, share.User.TelegramChatID, msg); err != nil {
		n.logger.Warn("Failed to deliver payment notification",
			zap.String("bill_reference", bill.Reference),
			zap.String("user_id", share.UserID.String()),
			zap.Error(err))
	}
}

// DueReminder sends a resident the digest of their outstanding shares
func (n *TelegramNotifier) DueReminder(ctx context.Context, user *identity.User, pending []appbilling.PendingShare) {
	if user == nil || !user.HasTelegramChat() || len(pending) == 0 {
		return
	}

	msg := DueReminderMessage(pending, n.symbol)
	if err := n.client.SendMessage(ctx, user.TelegramChatID, msg); err != nil {
		n.logger.Warn("Failed to deliver due reminder",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}
