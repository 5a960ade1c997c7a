package payment

import "github.com/bots-empire/referron-bot/internal/model"

type PaymentStore interface {
	GetAccountByID(id int64) (*model.Account, error)
	SetOpportunities(id int64, count int) (bool, error)
	InsertTransaction(transaction *model.Transaction) error
	InsertPendingPayment(payment *model.PendingPayment) error
	GetPendingPayment(wallet string) (*model.PendingPayment, error)
	DeletePendingPayment(wallet string) error
}

// Balances is the ledger slice the payment flow drives.
type Balances interface {
	TopUpBalance(id int64, amount int64) error
	DebitBalance(id int64, amount int64) error
}

type Service struct {
	store   PaymentStore
	balance Balances
}

func NewPaymentService(store PaymentStore, balance Balances) *Service {
	return &Service{
		store:   store,
		balance: balance,
	}
}
