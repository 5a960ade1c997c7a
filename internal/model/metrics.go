package model

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HandleUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "total_handle_updates",
		Help: "Updates pulled from the telegram channel.",
	}, []string{"bot_link"})

	LossUserMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "total_loss_messages",
		Help: "Updates dropped because no handler slot freed up in time.",
	}, []string{"bot_link"})

	LinkSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "total_link_sends",
		Help: "Accepted link distributions by quota tier.",
	}, []string{"tier"})

	NewAccounts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_new_accounts",
		Help: "Accounts created on first contact.",
	})

	ReferralSignups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_referral_signups",
		Help: "New accounts attributed to a referral code.",
	})

	QuotaDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_quota_denials",
		Help: "Link sends rejected with exhausted quota.",
	})

	DeliveredLinks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_delivered_links",
		Help: "Link notifications delivered to audience members.",
	})

	FailedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_failed_deliveries",
		Help: "Link notifications that telegram refused.",
	})

	BlockUser = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_block_users",
		Help: "Accounts flipped to deleted after blocking the bot.",
	})

	RedeemedRewards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_redeemed_rewards",
		Help: "Successful point redemptions.",
	})

	ImpressionPurchases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_impression_purchases",
		Help: "Completed impression package purchases.",
	})

	ConfirmedPayments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "total_confirmed_payments",
		Help: "Operator confirmed balance top-ups.",
	})
)
