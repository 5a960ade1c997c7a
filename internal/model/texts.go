package model

import "fmt"

// defaultTexts is the single-language reply library. Keys are referenced by
// the command layer through Bot.Text.
var defaultTexts = map[string]string{
	"welcome_new_user":  "🎉 Welcome! Your referral code is %s. Share it to earn rewards!",
	"welcome_back":      "👋 Welcome back! Your referral code is %s.",
	"invalid_ref_code":  "❌ Invalid referral code.",
	"not_registered":    "You are not registered! Please use /start to register.",
	"referral_joined":   "🎉 %s joined with your code! You earned %d points.",
	"something_wrong":   "Something went wrong, please try again later.",
	"under_maintenance": "🛠 The bot is under maintenance, please come back later.",
	"level_not_found":   "I did not get that. Use /help to see the commands.",

	"sendlink_usage":  "Please provide a link. Usage: /sendlink <your_link>",
	"link_shared":     "✅ Your link has been shared with %d users!",
	"link_shared_p":   "✅ Your link has been shared with %d users! Impressions left: %d.",
	"quota_exhausted": "❌ You have already used your free link share for today. Buy impressions with /buy to share more!",
	"no_audience":     "😕 No other users to share with yet. Invite friends with your referral code!",
	"incoming_link":   "📢 New referral link shared: %s",

	"leaderboard_header": "🏆 Referral Leaderboard:\n\n",
	"leaderboard_row":    "%d. %s - %d referrals, %d points\n",
	"leaderboard_empty":  "No users yet!",

	"redeem_success":      "🎁 You have successfully redeemed a reward! %d points were deducted.",
	"redeem_insufficient": "❌ You need at least %d points to redeem a reward.",

	"profile_text": "👤 *Your profile*\n\nName: %s\nReferral code: `%s`\nReferral link: %s\nReferrals: %d\nPoints: %d\nBalance: %d %s\nImpressions left: %d",

	"buy_prompt":       "How many impressions do you want to buy? Reply with a number (1 impression = %d %s).",
	"buy_confirm":      "Buy %d impressions for %d %s?",
	"buy_success":      "✅ Purchase complete! Your impression package is now %d.",
	"buy_insufficient": "❌ Insufficient balance. Top up your account with /topup.",
	"buy_cancelled":    "Purchase cancelled.",
	"invalid_number":   "Please send a positive whole number.",
	"confirm_button":   "✅ Confirm",
	"cancel_button":    "❌ Cancel",

	"topup_text":        "💳 To top up your balance, transfer funds to the address below and wait for the operator to confirm it:\n\n`%s`",
	"payment_confirmed": "✅ Payment received! %d %s were added to your balance.",

	"help_text": "Available commands:\n" +
		"/start <code> - register, optionally with a referral code\n" +
		"/profile - show your account\n" +
		"/sendlink <link> - share a link with other users\n" +
		"/leaderboard - top referrers\n" +
		"/redeem - redeem a reward for points\n" +
		"/buy - buy an impression package\n" +
		"/topup - top up your balance\n" +
		"/cancel - abort the current action",
}

// GetIncomingLinkText renders the notification an audience member receives
// during a fan-out.
func GetIncomingLinkText(payload string) string {
	return fmt.Sprintf(defaultTexts["incoming_link"], payload)
}
