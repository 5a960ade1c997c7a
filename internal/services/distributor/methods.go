package distributor

import (
	"math/rand"

	"github.com/bots-empire/referron-bot/internal/model"
)

// Report sums up one fan-out. Failed counts recipients telegram refused,
// their absence never fails the send as a whole.
type Report struct {
	Selected  int
	Delivered int
	Failed    int
}

// SelectAudience picks up to size deliverable accounts, never including the
// sender. The store hands back a bounded pool, the shuffle decides who of
// the pool actually receives the link.
func (d *Distributor) SelectAudience(excludeID int64, size int) ([]*model.Account, error) {
	if size <= 0 {
		return nil, nil
	}

	poolLimit := model.AdminSettings.GetParams().AudiencePoolLimit
	if poolLimit < size {
		poolLimit = size
	}

	pool, err := d.store.ListOtherAccounts(excludeID, poolLimit)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > size {
		pool = pool[:size]
	}

	return pool, nil
}

// Distribute fans the shared link out to a random audience. Delivery is best
// effort, a blocked recipient is logged and skipped while the rest of the
// batch continues.
func (d *Distributor) Distribute(fromID int64, payload string, size int) (*Report, error) {
	audience, err := d.SelectAudience(fromID, size)
	if err != nil {
		return nil, err
	}

	if len(audience) == 0 {
		return nil, model.ErrNoAudience
	}

	report := &Report{Selected: len(audience)}
	text := model.GetIncomingLinkText(payload)

	for _, acc := range audience {
		if err := d.sender.SendSimpleMsg(acc.ID, text); err != nil {
			report.Failed++
			model.FailedDeliveries.Inc()
			d.logger.Warn("failed deliver link to %d: %s", acc.ID, err.Error())
			continue
		}

		report.Delivered++
		model.DeliveredLinks.Inc()
	}

	return report, nil
}
