package accountrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/errorspkg"
)

const (
	redisSeqKey   = "accounts:seq"
	redisIndexKey = "accounts"

	redisMaxRetries = 5
)

// RepoRedis stores every account as a JSON string and keeps ids in a sorted set.
type RepoRedis struct {
	rdb *redis.Client
}

// NewRepoRedis returns RepoRedis.
func NewRepoRedis(rdb *redis.Client) *RepoRedis {
	return &RepoRedis{rdb: rdb}
}

func accountKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}

// Get returns the account with the given id.
func (r *RepoRedis) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	data, err := r.rdb.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	var a domain.Account
	if err := json.Unmarshal(data, &a); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

// Save inserts the account when its id is zero and updates it otherwise.
// An update watches the account key so that a concurrent delete is not undone.
func (r *RepoRedis) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if a.ID == 0 {
		id, err := r.rdb.Incr(ctx, redisSeqKey).Result()
		if err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, errorspkg.ErrInternal
		}

		a.ID = id

		if err := write(ctx, r.rdb, a); err != nil {
			l.Error().Err(err).Msgf("Save(ctx, %+v)", a)
			return domain.Account{}, errorspkg.ErrInternal
		}

		return a, nil
	}

	key := accountKey(a.ID)

	update := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}

		if n == 0 {
			return domain.ErrAccountNotFound
		}

		return write(ctx, tx, a)
	}

	for i := 0; i < redisMaxRetries; i++ {
		err := r.rdb.Watch(ctx, update, key)

		switch {
		case err == nil:
			return a, nil
		case errors.Is(err, domain.ErrAccountNotFound):
			return domain.Account{}, err
		case errors.Is(err, redis.TxFailedErr):
			continue
		default:
			l.Error().Err(err).Msgf("Save(ctx, %+v)", a)
			return domain.Account{}, errorspkg.ErrInternal
		}
	}

	l.Error().Int64("account_id", a.ID).Msg("account key kept changing during save")

	return domain.Account{}, errorspkg.ErrInternal
}

// write stores the account and indexes its id in one MULTI/EXEC.
func write(ctx context.Context, c redis.Cmdable, a domain.Account) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}

	_, err = c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, accountKey(a.ID), data, 0)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(a.ID), Member: a.ID})

		return nil
	})

	return err
}

// Delete removes the account with the given id.
func (r *RepoRedis) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	var del *redis.IntCmd

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, accountKey(id))
		pipe.ZRem(ctx, redisIndexKey, id)

		return nil
	})
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if del.Val() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List returns all accounts ordered by id.
func (r *RepoRedis) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	ids, err := r.rdb.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items := []domain.Account{}

	if len(ids) == 0 {
		return items, nil
	}

	keys := make([]string, 0, len(ids))

	for _, s := range ids {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		keys = append(keys, accountKey(id))
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// removed between ZRANGE and MGET
			continue
		}

		var a domain.Account
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	return items, nil
}
