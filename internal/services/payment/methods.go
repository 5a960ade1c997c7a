package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bots-empire/referron-bot/internal/model"
)

// PriceFor quotes an impression package in balance units.
func PriceFor(count int) int64 {
	return int64(count) * model.AdminSettings.GetParams().ImpressionPrice
}

// BuyImpressions debits the package price and replaces the opportunity
// counter with count. Whatever was left of a previous package is gone after
// the purchase, the two packages do not add up.
func (s *Service) BuyImpressions(accountID int64, count int) (int64, error) {
	if count <= 0 {
		return 0, model.ErrInvalidAmount
	}

	price := PriceFor(count)

	if err := s.balance.DebitBalance(accountID, price); err != nil {
		return 0, err
	}

	replaced, err := s.store.SetOpportunities(accountID, count)
	if err != nil {
		return 0, err
	}
	if !replaced {
		return 0, model.ErrAccountNotFound
	}

	err = s.store.InsertTransaction(&model.Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Amount:    price,
		Kind:      model.TransactionPurchase,
		Status:    model.TransactionCompleted,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	return price, nil
}

// RequestTopUp hands the user a one-time deposit address and remembers who
// it belongs to until an operator confirms the transfer.
func (s *Service) RequestTopUp(accountID int64) (*model.PendingPayment, error) {
	if _, err := s.store.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	pending := &model.PendingPayment{
		Wallet:    newWalletAddress(),
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.InsertPendingPayment(pending); err != nil {
		return nil, err
	}

	return pending, nil
}

// ConfirmPendingPayment settles the transfer an operator verified by hand.
// It credits the balance, journals the top-up and burns the deposit address.
func (s *Service) ConfirmPendingPayment(wallet string, amount int64) (int64, error) {
	pending, err := s.store.GetPendingPayment(wallet)
	if err != nil {
		return 0, err
	}

	if err = s.balance.TopUpBalance(pending.AccountID, amount); err != nil {
		return 0, err
	}

	err = s.store.InsertTransaction(&model.Transaction{
		ID:        uuid.NewString(),
		AccountID: pending.AccountID,
		Amount:    amount,
		Kind:      model.TransactionTopUp,
		Status:    model.TransactionCompleted,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	if err = s.store.DeletePendingPayment(wallet); err != nil {
		return 0, err
	}

	return pending.AccountID, nil
}

func newWalletAddress() string {
	return "rfn_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
