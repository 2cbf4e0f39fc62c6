package store

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/mkoster/circuitry/pkg/diagram"
	"github.com/mkoster/circuitry/pkg/errors"
	"github.com/mkoster/circuitry/pkg/observability"
)

const (
	redisKeyPrefix = "circuitry:diagram:"
	redisIndexKey  = "circuitry:diagrams"
)

// Redis stores diagrams as JSON strings under namespaced keys, with a set
// index for listing.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a store on an existing client. The store takes ownership:
// Close closes the client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisAddr creates a store connected to the given address.
func NewRedisAddr(addr string) *Redis {
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
}

// Put saves a diagram, assigning an id if needed.
func (s *Redis) Put(ctx context.Context, d diagram.Diagram) (string, error) {
	assignID(&d)

	data, err := diagram.Marshal(d)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "marshal diagram %s", d.ID)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+d.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, d.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "save diagram %s", d.ID)
	}

	observability.Store().OnPut(ctx, "redis", len(data))
	return d.ID, nil
}

// Get loads a diagram by id.
func (s *Redis) Get(ctx context.Context, id string) (diagram.Diagram, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		observability.Store().OnGet(ctx, "redis", false)
		return diagram.Diagram{}, notFound(id)
	}
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeStore, err, "load diagram %s", id)
	}

	d, err := diagram.Unmarshal(data)
	if err != nil {
		return diagram.Diagram{}, errors.Wrap(errors.ErrCodeStore, err, "decode diagram %s", id)
	}

	observability.Store().OnGet(ctx, "redis", true)
	return d, nil
}

// List returns summaries of all stored diagrams, ordered by id.
func (s *Redis) List(ctx context.Context) ([]Entry, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list diagrams")
	}
	sort.Strings(ids)

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		d, err := s.Get(ctx, id)
		if errors.Is(err, errors.ErrCodeDiagramNotFound) {
			// Index entry outlived its key; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ID: id, Name: d.Name, Nodes: len(d.Nodes)})
	}
	return entries, nil
}

// Delete removes a diagram by id.
func (s *Redis) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete diagram %s", id)
	}
	if err := s.client.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete diagram %s", id)
	}
	if removed == 0 {
		return notFound(id)
	}

	observability.Store().OnDelete(ctx, "redis")
	return nil
}

// Close closes the underlying client.
func (s *Redis) Close() error { return s.client.Close() }

var _ Store = (*Redis)(nil)
