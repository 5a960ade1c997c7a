package ledger

import (
	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/model"
)

// GetOrCreate loads the account for id or registers a fresh one. Calling it
// twice never creates two rows and never rewards the referrer twice, the
// insert decides who won. A referral code that resolves to nobody aborts the
// registration before anything is written.
func (l *Ledger) GetOrCreate(id int64, name, referredBy string) (*model.Account, bool, error) {
	acc, err := l.store.GetAccountByID(id)
	if err == nil {
		return acc, false, nil
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, false, err
	}

	var referrer *model.Account
	if referredBy != "" {
		referrer, err = l.store.GetAccountByReferralCode(referredBy)
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, false, model.ErrInvalidReferralCode
		}
		if err != nil {
			return nil, false, err
		}
	}

	newAcc := &model.Account{
		ID:         id,
		Name:       name,
		ReferredBy: referredBy,
		Status:     model.StatusActive,
	}

	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		newAcc.ReferralCode = GenerateReferralCode()

		inserted, err := l.store.InsertAccount(newAcc)
		if errors.Is(err, model.ErrReferralCodeTaken) {
			continue
		}
		if err != nil {
			return nil, false, err
		}

		if !inserted {
			// lost the race against a parallel first contact
			acc, err = l.store.GetAccountByID(id)
			if err != nil {
				return nil, false, err
			}
			return acc, false, nil
		}

		if referrer != nil {
			if err = l.store.CreditReferral(referrer.ID, model.AdminSettings.GetParams().ReferralReward); err != nil {
				return nil, false, err
			}
		}

		return newAcc, true, nil
	}

	return nil, false, errors.Wrap(model.ErrReferralCodeTaken, "failed generate unique referral code")
}

func (l *Ledger) GetAccount(id int64) (*model.Account, error) {
	return l.store.GetAccountByID(id)
}

func (l *Ledger) GetAccountByCode(code string) (*model.Account, error) {
	return l.store.GetAccountByReferralCode(code)
}

// RedeemPoints burns the configured reward cost. The points check happens
// inside the update itself, a stale read can not spend the same points twice.
func (l *Ledger) RedeemPoints(id int64) error {
	cost := model.AdminSettings.GetParams().RedeemCost

	redeemed, err := l.store.RedeemPoints(id, cost)
	if err != nil {
		return err
	}

	if !redeemed {
		if _, err = l.store.GetAccountByID(id); err != nil {
			return err
		}
		return model.ErrInsufficientPoints
	}

	return nil
}

func (l *Ledger) TopUpBalance(id int64, amount int64) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	credited, err := l.store.CreditBalance(id, amount)
	if err != nil {
		return err
	}

	if !credited {
		return model.ErrAccountNotFound
	}

	return nil
}

func (l *Ledger) DebitBalance(id int64, amount int64) error {
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	debited, err := l.store.DebitBalance(id, amount)
	if err != nil {
		return err
	}

	if !debited {
		if _, err = l.store.GetAccountByID(id); err != nil {
			return err
		}
		return model.ErrInsufficientBalance
	}

	return nil
}

// Leaderboard returns the best referrers, most referrals first. Ties fall
// back to points, then to the older account.
func (l *Ledger) Leaderboard(limit int) ([]*model.Account, error) {
	if limit <= 0 {
		limit = model.AdminSettings.GetParams().TopListSize
	}

	return l.store.TopAccountsByReferrals(limit)
}
