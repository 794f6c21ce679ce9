package sessionrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/cache"
	"gostorefront/internal/pkg/logger"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *mockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func newSession(t *testing.T) domain.Session {
	s := domain.Session{
		ID:       "sessao-1",
		Filters:  domain.DefaultFilterState(decimal.NewFromInt(2000)),
		Carousel: domain.NewCarouselWindow(3),
	}
	require.NoError(t, s.Cart.Add(domain.Product{ID: "p1", Name: "Speaker", Price: decimal.RequireFromString("89.99")}, 2))
	return s
}

func TestMemoryStore_SaveLoadIsolation(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	s := newSession(t)
	require.NoError(t, store.Save(context.Background(), s))

	// Alterar a cópia carregada não afeta o store.
	loaded, err := store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	loaded.Cart.Increment("p1")
	loaded.Filters.ToggleBrand("X")

	again, err := store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Cart.ItemCount())
	assert.Empty(t, again.Filters.Brands)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	s := newSession(t)
	require.NoError(t, store.Save(context.Background(), s))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := store.Load(context.Background(), s.ID)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Sweep())
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	s := newSession(t)
	require.NoError(t, store.Save(context.Background(), s))
	require.NoError(t, store.Delete(context.Background(), s.ID))

	_, err := store.Load(context.Background(), s.ID)
	assert.Error(t, err)
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	c := new(mockCache)
	store := NewRedisStore(c, 2*time.Hour, time.Second, logger.NewNop())
	s := newSession(t)

	var saved []byte
	c.On("Set", mock.Anything, "session:sessao-1", mock.Anything, 2*time.Hour).
		Run(func(args mock.Arguments) { saved = args.Get(2).([]byte) }).
		Return(nil)
	require.NoError(t, store.Save(context.Background(), s))

	c.On("Get", mock.Anything, "session:sessao-1").Return(string(saved), nil)
	loaded, err := store.Load(context.Background(), "sessao-1")
	require.NoError(t, err)

	assert.Equal(t, 2, loaded.Cart.ItemCount())
	assert.True(t, loaded.Cart.Lines[0].UnitPrice.Equal(decimal.RequireFromString("89.99")))
	assert.Equal(t, 3, loaded.Carousel.PageSize)
	c.AssertExpectations(t)
}

func TestRedisStore_MissIsNotFound(t *testing.T) {
	c := new(mockCache)
	c.On("Get", mock.Anything, "session:x").Return("", cache.ErrCacheMiss)

	_, err := NewRedisStore(c, time.Hour, time.Second, logger.NewNop()).Load(context.Background(), "x")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestRedisStore_FailureIsInternal(t *testing.T) {
	c := new(mockCache)
	c.On("Get", mock.Anything, "session:x").Return("", errors.New("i/o timeout"))

	_, err := NewRedisStore(c, time.Hour, time.Second, logger.NewNop()).Load(context.Background(), "x")
	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestRedisStore_CorruptPayloadIsNotFound(t *testing.T) {
	c := new(mockCache)
	c.On("Get", mock.Anything, "session:x").Return("{nao-e-json", nil)

	_, err := NewRedisStore(c, time.Hour, time.Second, logger.NewNop()).Load(context.Background(), "x")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}
