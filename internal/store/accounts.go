package store

import (
	"database/sql"

	"github.com/bots-empire/referron-bot/internal/model"
)

func (s *Store) GetAccountByID(id int64) (*model.Account, error) {
	rows, err := s.db.Query(`
SELECT id, name, referral_code, referred_by, referrals, points, balance, opportunities, status FROM referron.accounts
	WHERE id = $1;`,
		id)
	if err != nil {
		return nil, model.WrapStore(err, "get account by id")
	}

	accounts, err := readAccounts(rows)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, model.ErrAccountNotFound
	}

	return accounts[0], nil
}

func (s *Store) GetAccountByReferralCode(code string) (*model.Account, error) {
	rows, err := s.db.Query(`
SELECT id, name, referral_code, referred_by, referrals, points, balance, opportunities, status FROM referron.accounts
	WHERE referral_code = $1;`,
		code)
	if err != nil {
		return nil, model.WrapStore(err, "get account by referral code")
	}

	accounts, err := readAccounts(rows)
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, model.ErrAccountNotFound
	}

	return accounts[0], nil
}

// InsertAccount writes a fresh account row. A concurrent insert of the same
// id is not an error, the loser reports inserted = false and rereads. A taken
// referral code surfaces as model.ErrReferralCodeTaken so the caller can draw
// a new one.
func (s *Store) InsertAccount(acc *model.Account) (bool, error) {
	res, err := s.db.Exec(`
INSERT INTO referron.accounts (id, name, referral_code, referred_by, referrals, points, balance, opportunities, status)
	VALUES ($1, $2, $3, $4, 0, 0, 0, 0, $5)
ON CONFLICT (id) DO NOTHING;`,
		acc.ID,
		acc.Name,
		acc.ReferralCode,
		nullableString(acc.ReferredBy),
		model.StatusActive)
	if err != nil {
		if isUniqueViolation(err) {
			return false, model.ErrReferralCodeTaken
		}
		return false, model.WrapStore(err, "insert account")
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, model.WrapStore(err, "insert account rows affected")
	}

	return inserted > 0, nil
}

func (s *Store) CreditReferral(referrerID int64, points int) error {
	_, err := s.db.Exec(`
UPDATE referron.accounts
	SET referrals = referrals + 1, points = points + $1
WHERE id = $2;`,
		points,
		referrerID)
	if err != nil {
		return model.WrapStore(err, "credit referral")
	}

	return nil
}

// RedeemPoints subtracts cost only when the row still holds enough points.
// Zero affected rows means the balance check failed inside the database, not
// in a read the caller did earlier.
func (s *Store) RedeemPoints(id int64, cost int) (bool, error) {
	res, err := s.db.Exec(`
UPDATE referron.accounts
	SET points = points - $1
WHERE id = $2 AND points >= $1;`,
		cost,
		id)
	if err != nil {
		return false, model.WrapStore(err, "redeem points")
	}

	return oneRowAffected(res, "redeem points")
}

func (s *Store) CreditBalance(id int64, amount int64) (bool, error) {
	res, err := s.db.Exec(`
UPDATE referron.accounts
	SET balance = balance + $1
WHERE id = $2;`,
		amount,
		id)
	if err != nil {
		return false, model.WrapStore(err, "credit balance")
	}

	return oneRowAffected(res, "credit balance")
}

func (s *Store) DebitBalance(id int64, amount int64) (bool, error) {
	res, err := s.db.Exec(`
UPDATE referron.accounts
	SET balance = balance - $1
WHERE id = $2 AND balance >= $1;`,
		amount,
		id)
	if err != nil {
		return false, model.WrapStore(err, "debit balance")
	}

	return oneRowAffected(res, "debit balance")
}

// SetOpportunities replaces the package counter. Buying a package does not
// stack on leftovers from the previous one.
func (s *Store) SetOpportunities(id int64, count int) (bool, error) {
	res, err := s.db.Exec(`
UPDATE referron.accounts
	SET opportunities = $1
WHERE id = $2;`,
		count,
		id)
	if err != nil {
		return false, model.WrapStore(err, "set opportunities")
	}

	return oneRowAffected(res, "set opportunities")
}

func (s *Store) ConsumeOpportunity(id int64) (bool, error) {
	res, err := s.db.Exec(`
UPDATE referron.accounts
	SET opportunities = opportunities - 1
WHERE id = $1 AND opportunities > 0;`,
		id)
	if err != nil {
		return false, model.WrapStore(err, "consume opportunity")
	}

	return oneRowAffected(res, "consume opportunity")
}

func (s *Store) TopAccountsByReferrals(limit int) ([]*model.Account, error) {
	rows, err := s.db.Query(`
SELECT id, name, referral_code, referred_by, referrals, points, balance, opportunities, status FROM referron.accounts
	WHERE status <> $1
ORDER BY referrals DESC, points DESC, id ASC
LIMIT $2;`,
		model.StatusDeleted,
		limit)
	if err != nil {
		return nil, model.WrapStore(err, "top accounts by referrals")
	}

	return readAccounts(rows)
}

// ListOtherAccounts returns a bounded pool of deliverable accounts excluding
// the sender. Randomization happens in the distributor, the query stays a
// plain bounded scan.
func (s *Store) ListOtherAccounts(excludeID int64, limit int) ([]*model.Account, error) {
	rows, err := s.db.Query(`
SELECT id, name, referral_code, referred_by, referrals, points, balance, opportunities, status FROM referron.accounts
	WHERE id <> $1 AND status <> $2
LIMIT $3;`,
		excludeID,
		model.StatusDeleted,
		limit)
	if err != nil {
		return nil, model.WrapStore(err, "list other accounts")
	}

	return readAccounts(rows)
}

func (s *Store) CountAccounts() (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM referron.accounts;`).Scan(&count)
	if err != nil {
		return 0, model.WrapStore(err, "count accounts")
	}

	return count, nil
}

func (s *Store) CountBlockedAccounts() (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM referron.accounts
	WHERE status = $1;`,
		model.StatusDeleted).Scan(&count)
	if err != nil {
		return 0, model.WrapStore(err, "count blocked accounts")
	}

	return count, nil
}

func (s *Store) SumReferrals() (int, error) {
	var sum int
	err := s.db.QueryRow(`
SELECT COALESCE(SUM(referrals), 0) FROM referron.accounts;`).Scan(&sum)
	if err != nil {
		return 0, model.WrapStore(err, "sum referrals")
	}

	return sum, nil
}

func oneRowAffected(res sql.Result, operation string) (bool, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return false, model.WrapStore(err, operation+" rows affected")
	}

	return affected > 0, nil
}

func readAccounts(rows *sql.Rows) ([]*model.Account, error) {
	defer rows.Close()

	var accounts []*model.Account

	for rows.Next() {
		acc := &model.Account{}
		var referredBy sql.NullString

		if err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.ReferralCode,
			&referredBy,
			&acc.Referrals,
			&acc.Points,
			&acc.Balance,
			&acc.Opportunities,
			&acc.Status); err != nil {
			return nil, model.ErrScanSqlRow
		}

		acc.ReferredBy = referredBy.String
		accounts = append(accounts, acc)
	}

	return accounts, model.WrapStore(rows.Err(), "iterate account rows")
}
