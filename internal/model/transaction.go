package model

import "time"

const (
	TransactionPurchase = "purchase"
	TransactionTopUp    = "topup"

	TransactionCompleted = "completed"
	TransactionPending   = "pending"
)

// Transaction is an append-only entry in the monetary journal. Rows are
// written once with a final status and never updated afterwards.
type Transaction struct {
	ID        string    `json:"id"`
	AccountID int64     `json:"account_id"`
	Amount    int64     `json:"amount"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkEvent records a single accepted link distribution. The daily free
// quota is derived from the presence of an event within the current UTC day,
// not from a separate flag.
type LinkEvent struct {
	ID        string    `json:"id"`
	AccountID int64     `json:"account_id"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingPayment binds a one-time deposit address to the account that
// requested it. The row lives until an operator confirms the transfer.
type PendingPayment struct {
	Wallet    string    `json:"wallet"`
	AccountID int64     `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}
