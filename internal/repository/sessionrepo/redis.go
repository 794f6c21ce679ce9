package sessionrepo

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gostorefront/internal/domain"
	"gostorefront/internal/errors"
	"gostorefront/internal/pkg/cache"
	"gostorefront/internal/pkg/logger"
)

const sessionKey = "session:%s"

// RedisStore guarda sessões serializadas em JSON com TTL; a sessão termina quando a chave expira.
type RedisStore struct {
	cache   cache.Client
	ttl     time.Duration
	timeout time.Duration
	logger  logger.Logger
}

func NewRedisStore(c cache.Client, ttl, timeout time.Duration, log logger.Logger) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl, timeout: timeout, logger: log}
}

func (s *RedisStore) Load(ctx context.Context, id string) (domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.cache.Get(ctx, fmt.Sprintf(sessionKey, id))
	if stderrors.Is(err, cache.ErrCacheMiss) {
		return domain.Session{}, errors.NewNotFoundError(fmt.Sprintf("Sessão %s expirada ou inexistente.", id))
	}
	if err != nil {
		return domain.Session{}, errors.NewCacheError("Falha ao carregar sessão", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("Sessão corrompida descartada.", map[string]interface{}{"session_id": id})
		return domain.Session{}, errors.NewNotFoundError(fmt.Sprintf("Sessão %s expirada ou inexistente.", id))
	}
	return session, nil
}

// Save regrava a sessão e renova o TTL.
func (s *RedisStore) Save(ctx context.Context, session domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := json.Marshal(session)
	if err != nil {
		return errors.NewInternalError("Falha ao serializar sessão.", err)
	}
	if err := s.cache.Set(ctx, fmt.Sprintf(sessionKey, session.ID), data, s.ttl); err != nil {
		return errors.NewCacheError("Falha ao gravar sessão", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.cache.Delete(ctx, fmt.Sprintf(sessionKey, id)); err != nil {
		return errors.NewCacheError("Falha ao remover sessão", err)
	}
	return nil
}
