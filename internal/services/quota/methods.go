package quota

import (
	"time"

	"github.com/google/uuid"

	"github.com/bots-empire/referron-bot/internal/model"
)

// Grant is a positive quota decision. FanoutSize caps the audience of the
// send it authorizes.
type Grant struct {
	FanoutSize int
	UsedFree   bool
}

// CheckAndConsume runs the tier ladder for one send attempt. The first send
// of the UTC day is free, later ones burn a purchased opportunity, with
// nothing left the attempt fails with ErrQuotaExhausted. The per-account
// lock keeps two parallel attempts from both reading an empty day.
func (e *Engine) CheckAndConsume(accountID int64, payload string) (*Grant, error) {
	unlock := e.locks.Lock(accountID)
	defer unlock()

	if _, err := e.store.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	params := model.AdminSettings.GetParams()

	sentToday, err := e.store.CountLinkEventsSince(accountID, e.startOfDay())
	if err != nil {
		return nil, err
	}

	if sentToday == 0 {
		if err = e.recordEvent(accountID, payload); err != nil {
			return nil, err
		}

		return &Grant{FanoutSize: params.FreeFanout, UsedFree: true}, nil
	}

	consumed, err := e.store.ConsumeOpportunity(accountID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, model.ErrQuotaExhausted
	}

	// the opportunity is burned before the event lands, a write failure here
	// costs the user one opportunity instead of handing out a free day
	if err = e.recordEvent(accountID, payload); err != nil {
		return nil, err
	}

	return &Grant{FanoutSize: params.PaidFanout, UsedFree: false}, nil
}

func (e *Engine) recordEvent(accountID int64, payload string) error {
	return e.store.InsertLinkEvent(&model.LinkEvent{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Payload:   payload,
		CreatedAt: e.now().UTC(),
	})
}

func (e *Engine) startOfDay() time.Time {
	now := e.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
