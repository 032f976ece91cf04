package accountrepo

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/errorspkg"
)

var accountsBucket = []byte("accounts")

// RepoBolt stores accounts in an embedded bolt database file.
type RepoBolt struct {
	db *bbolt.DB
}

// NewRepoBolt returns RepoBolt and makes sure the accounts bucket exists.
func NewRepoBolt(db *bbolt.DB) (*RepoBolt, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(accountsBucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &RepoBolt{db: db}, nil
}

// Get returns the account with the given id.
func (r *RepoBolt) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := r.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(accountsBucket).Get(encodeID(id))
		if v == nil {
			return domain.ErrAccountNotFound
		}

		return json.Unmarshal(v, &a)
	})

	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, err
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

// Save inserts the account when its id is zero and updates it otherwise.
func (r *RepoBolt) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bu := tx.Bucket(accountsBucket)

		if a.ID == 0 {
			seq, err := bu.NextSequence()
			if err != nil {
				return err
			}

			a.ID = int64(seq)
		} else if bu.Get(encodeID(a.ID)) == nil {
			return domain.ErrAccountNotFound
		}

		data, err := json.Marshal(a)
		if err != nil {
			return err
		}

		return bu.Put(encodeID(a.ID), data)
	})

	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Account{}, err
		}

		l.Error().Err(err).Msgf("Save(ctx, %+v)", a)

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

// Delete removes the account with the given id.
func (r *RepoBolt) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bu := tx.Bucket(accountsBucket)

		k := encodeID(id)
		if bu.Get(k) == nil {
			return domain.ErrAccountNotFound
		}

		return bu.Delete(k)
	})

	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	return nil
}

// List returns all accounts ordered by id.
func (r *RepoBolt) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	items := []domain.Account{}

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(accountsBucket).ForEach(func(_, v []byte) error {
			var a domain.Account
			if err := json.Unmarshal(v, &a); err != nil {
				return err
			}

			items = append(items, a)

			return nil
		})
	})

	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// encodeID keeps keys in numeric order under bolt's byte-wise ordering.
func encodeID(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))

	return b
}
