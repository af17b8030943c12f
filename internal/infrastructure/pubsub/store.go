package pubsub

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"
)

// store persists the webhook subscriptions. With an empty datadir the
// subscriptions are kept in memory.
type store struct {
	db *badgerhold.Store
}

func newStore(datadir string, logger badger.Logger) (*store, error) {
	opts := badger.DefaultOptions("")
	if len(datadir) > 0 {
		opts = badger.DefaultOptions(filepath.Join(datadir, "webhooks"))
		opts.Compression = options.ZSTD
	} else {
		opts.InMemory = true
	}
	opts.Logger = logger

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, fmt.Errorf("opening webhooks db: %w", err)
	}
	return &store{db}, nil
}

func (s *store) add(sub *Subscription) error {
	if err := s.db.Insert(sub.ID, sub); err != nil {
		if err == badgerhold.ErrKeyExists {
			return nil
		}
		return err
	}
	return nil
}

func (s *store) remove(id string) error {
	if err := s.db.Delete(id, Subscription{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (s *store) getForTopic(topic string) (subscriptions, error) {
	var query *badgerhold.Query
	if topic != "" {
		query = badgerhold.Where("Event").Eq(topic).Index("Event")
	}

	var subs subscriptions
	if err := s.db.Find(&subs, query); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *store) close() {
	s.db.Close()
}
