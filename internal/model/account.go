package model

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

type Account struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ReferralCode  string `json:"referral_code"`
	ReferredBy    string `json:"referred_by"`
	Referrals     int    `json:"referrals"`
	Points        int    `json:"points"`
	Balance       int64  `json:"balance"`
	Opportunities int    `json:"opportunities"`
	Status        string `json:"status"`
}
