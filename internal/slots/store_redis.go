package slots

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/redis"
)

// RedisStore shares sessions across instances through Redis with a TTL, so
// abandoned design sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding session")
	}
	if err := r.client.SetSession(ctx, session.ID, payload, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing session")
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := r.client.GetSession(ctx, id)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading session")
	}
	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding session")
	}
	return &session, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteSession(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting session")
	}
	return nil
}
