package store

import (
	"context"
	"testing"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/stretchr/testify/require"
)

func TestMemorySampleExcludesAndCaps(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, stores.Users.Create(ctx, &model.User{Id: id, Username: id}))
	}

	users, err := stores.Users.Sample(ctx, "a", 3)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		require.NotEqual(t, "a", u.Id)
	}

	// asking for more than exist returns everyone else
	users, err = stores.Users.Sample(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, users, 4)
}

func TestMemoryPostOrdering(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	base := time.Now()

	// inserted oldest-last on purpose
	require.NoError(t, stores.Posts.Create(ctx, &model.Post{Id: "p1", UserId: "u", CreatedAt: base}))
	require.NoError(t, stores.Posts.Create(ctx, &model.Post{Id: "p2", UserId: "u", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, stores.Posts.Create(ctx, &model.Post{Id: "p3", UserId: "u", CreatedAt: base.Add(-time.Hour)}))

	all, err := stores.Posts.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p1", "p3"}, []string{all[0].Id, all[1].Id, all[2].Id})

	// ByIDs keeps insertion order regardless of timestamps
	byIDs, err := stores.Posts.ByIDs(ctx, []string{"p2", "p3"})
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p3"}, []string{byIDs[0].Id, byIDs[1].Id})
}

func TestMemoryReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	require.NoError(t, stores.Users.Create(ctx, &model.User{Id: "u1", Following: []string{}}))
	first, err := stores.Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	first.Following = append(first.Following, "tampered")

	second, err := stores.Users.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, second.Following)
}
