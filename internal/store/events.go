package store

import (
	"time"

	"github.com/bots-empire/referron-bot/internal/model"
)

func (s *Store) InsertLinkEvent(event *model.LinkEvent) error {
	_, err := s.db.Exec(`
INSERT INTO referron.link_events (id, account_id, payload, created_at)
	VALUES ($1, $2, $3, $4);`,
		event.ID,
		event.AccountID,
		event.Payload,
		event.CreatedAt)
	if err != nil {
		return model.WrapStore(err, "insert link event")
	}

	return nil
}

func (s *Store) CountLinkEventsSince(accountID int64, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM referron.link_events
	WHERE account_id = $1 AND created_at >= $2;`,
		accountID,
		since).Scan(&count)
	if err != nil {
		return 0, model.WrapStore(err, "count link events")
	}

	return count, nil
}

func (s *Store) CountLinkEvents() (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM referron.link_events;`).Scan(&count)
	if err != nil {
		return 0, model.WrapStore(err, "count all link events")
	}

	return count, nil
}
