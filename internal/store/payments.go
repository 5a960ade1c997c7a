package store

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/model"
)

func (s *Store) InsertTransaction(transaction *model.Transaction) error {
	_, err := s.db.Exec(`
INSERT INTO referron.transactions (id, account_id, amount, kind, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);`,
		transaction.ID,
		transaction.AccountID,
		transaction.Amount,
		transaction.Kind,
		transaction.Status,
		transaction.CreatedAt)
	if err != nil {
		return model.WrapStore(err, "insert transaction")
	}

	return nil
}

func (s *Store) InsertPendingPayment(payment *model.PendingPayment) error {
	_, err := s.db.Exec(`
INSERT INTO referron.pending_payments (wallet, account_id, created_at)
	VALUES ($1, $2, $3);`,
		payment.Wallet,
		payment.AccountID,
		payment.CreatedAt)
	if err != nil {
		return model.WrapStore(err, "insert pending payment")
	}

	return nil
}

func (s *Store) GetPendingPayment(wallet string) (*model.PendingPayment, error) {
	payment := &model.PendingPayment{}
	err := s.db.QueryRow(`
SELECT wallet, account_id, created_at FROM referron.pending_payments
	WHERE wallet = $1;`,
		wallet).Scan(
		&payment.Wallet,
		&payment.AccountID,
		&payment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPaymentNotFound
	}
	if err != nil {
		return nil, model.WrapStore(err, "get pending payment")
	}

	return payment, nil
}

func (s *Store) DeletePendingPayment(wallet string) error {
	_, err := s.db.Exec(`
DELETE FROM referron.pending_payments
	WHERE wallet = $1;`,
		wallet)
	if err != nil {
		return model.WrapStore(err, "delete pending payment")
	}

	return nil
}
