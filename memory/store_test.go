package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/fwojciec/sangga/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T, idle time.Duration) (*memory.SessionStore, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := memory.NewSessionStore(idle)
	s.Now = c.Now
	return s, c
}

func TestSessionStore_CreateSession(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t, time.Hour)
	ctx := context.Background()

	a, err := s.CreateSession(ctx)
	require.NoError(t, err)
	b, err := s.CreateSession(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, sangga.DefaultSearchParams(), a.Params())
	assert.Equal(t, 2, s.Len())
}

func TestSessionStore_FindSessionByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored session", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t, time.Hour)
		created, err := s.CreateSession(context.Background())
		require.NoError(t, err)

		found, err := s.FindSessionByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Same(t, created, found)
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		s, _ := newStore(t, time.Hour)

		_, err := s.FindSessionByID(context.Background(), "missing")

		assert.Equal(t, sangga.ENOTFOUND, sangga.ErrorCode(err))
	})

	t.Run("expires idle sessions", func(t *testing.T) {
		t.Parallel()

		s, c := newStore(t, time.Hour)
		created, err := s.CreateSession(context.Background())
		require.NoError(t, err)

		c.Advance(time.Hour + time.Second)
		_, err = s.FindSessionByID(context.Background(), created.ID)

		assert.Equal(t, sangga.ENOTFOUND, sangga.ErrorCode(err))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("lookup refreshes idle timer", func(t *testing.T) {
		t.Parallel()

		s, c := newStore(t, time.Hour)
		created, err := s.CreateSession(context.Background())
		require.NoError(t, err)

		c.Advance(50 * time.Minute)
		_, err = s.FindSessionByID(context.Background(), created.ID)
		require.NoError(t, err)

		c.Advance(50 * time.Minute)
		_, err = s.FindSessionByID(context.Background(), created.ID)
		assert.NoError(t, err)
	})
}

func TestSessionStore_DeleteSession(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t, time.Hour)
	created, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(context.Background(), created.ID))

	_, err = s.FindSessionByID(context.Background(), created.ID)
	assert.Equal(t, sangga.ENOTFOUND, sangga.ErrorCode(err))
	assert.Equal(t, sangga.ENOTFOUND, sangga.ErrorCode(s.DeleteSession(context.Background(), created.ID)))
}

func TestSessionStore_Sweep(t *testing.T) {
	t.Parallel()

	s, c := newStore(t, time.Hour)
	ctx := context.Background()
	_, err := s.CreateSession(ctx)
	require.NoError(t, err)

	c.Advance(30 * time.Minute)
	fresh, err := s.CreateSession(ctx)
	require.NoError(t, err)

	c.Advance(45 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, err = s.FindSessionByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestSessionStore_SeenListings(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t, time.Hour)
	session, err := s.CreateSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.UpdateParams(func(p *sangga.SearchParams) error {
		p.SelectRegion("서울특별시")
		return nil
	}))

	search := func() []*sangga.Property {
		_, ok, err := session.BeginSearch()
		require.NoError(t, err)
		require.True(t, ok)
		session.FinishSearch(&sangga.SearchResult{
			Properties: []*sangga.Property{{ID: "1", Name: "가산 SK V1", Link: "https://land.naver.com/1"}},
		}, nil, nil)
		return session.State().Properties
	}

	assert.False(t, search()[0].Seen)
	assert.True(t, search()[0].Seen)
}

func TestSessionStore_OpenClose(t *testing.T) {
	t.Parallel()

	s, c := newStore(t, time.Minute)
	_, err := s.CreateSession(context.Background())
	require.NoError(t, err)
	c.Advance(2 * time.Minute)

	s.Open(5 * time.Millisecond)
	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
