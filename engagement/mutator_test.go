package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s store.Stores, username string) *model.User {
	t.Helper()
	user := &model.User{
		Id:         uuid.New().String(),
		Username:   username,
		FullName:   username,
		Email:      username + "@example.com",
		Password:   "hashed-password",
		Followers:  []string{},
		Following:  []string{},
		LikedPosts: []string{},
		CreatedAt:  time.Now(),
	}
	require.NoError(t, s.Users.Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, s store.Stores, authorID, text string) *model.Post {
	t.Helper()
	post := &model.Post{
		Id:        uuid.New().String(),
		UserId:    authorID,
		Text:      text,
		Likes:     []string{},
		Comments:  []model.Comment{},
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Posts.Create(context.Background(), post))
	return post
}

func TestFollowUnfollowToggle(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")

	followed, err := mutator.FollowUnfollow(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	require.True(t, followed)

	// symmetric membership across both documents
	aliceNow, _ := stores.Users.GetByID(ctx, alice.Id)
	bobNow, _ := stores.Users.GetByID(ctx, bob.Id)
	require.Equal(t, []string{bob.Id}, aliceNow.Following)
	require.Equal(t, []string{alice.Id}, bobNow.Followers)
	require.Empty(t, aliceNow.Followers)
	require.Empty(t, bobNow.Following)

	notifications, err := stores.Notifications.ByRecipient(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationTypeFollow, notifications[0].Type)
	require.Equal(t, alice.Id, notifications[0].From)

	// second call undoes the first and must not notify again
	followed, err = mutator.FollowUnfollow(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	require.False(t, followed)

	aliceNow, _ = stores.Users.GetByID(ctx, alice.Id)
	bobNow, _ = stores.Users.GetByID(ctx, bob.Id)
	require.Empty(t, aliceNow.Following)
	require.Empty(t, bobNow.Followers)

	notifications, _ = stores.Notifications.ByRecipient(ctx, bob.Id)
	require.Len(t, notifications, 1)
}

func TestFollowSelfAlwaysFails(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)
	alice := seedUser(t, stores, "alice")

	for i := 0; i < 2; i++ {
		_, err := mutator.FollowUnfollow(ctx, alice.Id, alice.Id)
		require.Error(t, err)
		require.Equal(t, utils.KindInvalidOperation, utils.KindOf(err))
	}
}

func TestFollowMissingUser(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)
	alice := seedUser(t, stores, "alice")

	_, err := mutator.FollowUnfollow(ctx, alice.Id, "no-such-user")
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = mutator.FollowUnfollow(ctx, "no-such-user", alice.Id)
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestLikeUnlikeCouplingInvariant(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	post := seedPost(t, stores, alice.Id, "hello")

	liked, updated, err := mutator.LikeUnlike(ctx, bob.Id, post.Id)
	require.NoError(t, err)
	require.True(t, liked)
	require.Equal(t, []string{bob.Id}, updated.Likes)

	bobNow, _ := stores.Users.GetByID(ctx, bob.Id)
	require.Equal(t, []string{post.Id}, bobNow.LikedPosts)

	notifications, _ := stores.Notifications.ByRecipient(ctx, alice.Id)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationTypeLike, notifications[0].Type)
	require.Equal(t, bob.Id, notifications[0].From)

	// unlike clears both sides and appends nothing
	liked, updated, err = mutator.LikeUnlike(ctx, bob.Id, post.Id)
	require.NoError(t, err)
	require.False(t, liked)
	require.Empty(t, updated.Likes)

	bobNow, _ = stores.Users.GetByID(ctx, bob.Id)
	require.Empty(t, bobNow.LikedPosts)

	notifications, _ = stores.Notifications.ByRecipient(ctx, alice.Id)
	require.Len(t, notifications, 1)
}

func TestSelfLikeStillNotifies(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)

	alice := seedUser(t, stores, "alice")
	post := seedPost(t, stores, alice.Id, "me")

	liked, _, err := mutator.LikeUnlike(ctx, alice.Id, post.Id)
	require.NoError(t, err)
	require.True(t, liked)

	notifications, _ := stores.Notifications.ByRecipient(ctx, alice.Id)
	require.Len(t, notifications, 1)
	require.Equal(t, alice.Id, notifications[0].From)
	require.Equal(t, alice.Id, notifications[0].To)
}

func TestLikeMissingPost(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)
	alice := seedUser(t, stores, "alice")

	_, _, err := mutator.LikeUnlike(ctx, alice.Id, "no-such-post")
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestCommentOnPost(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	post := seedPost(t, stores, alice.Id, "hello")

	updated, err := mutator.CommentOnPost(ctx, bob.Id, post.Id, "first")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)

	updated, err = mutator.CommentOnPost(ctx, alice.Id, post.Id, "second")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 2)

	// insertion order is preserved
	require.Equal(t, "first", updated.Comments[0].Text)
	require.Equal(t, bob.Id, updated.Comments[0].UserId)
	require.Equal(t, "second", updated.Comments[1].Text)
	require.Equal(t, alice.Id, updated.Comments[1].UserId)

	// comments never notify
	notifications, _ := stores.Notifications.ByRecipient(ctx, alice.Id)
	require.Empty(t, notifications)
}

func TestCommentEmptyTextLeavesPostUnchanged(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)

	alice := seedUser(t, stores, "alice")
	post := seedPost(t, stores, alice.Id, "hello")

	_, err := mutator.CommentOnPost(ctx, alice.Id, post.Id, "")
	require.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	now, _ := stores.Posts.GetByID(ctx, post.Id)
	require.Empty(t, now.Comments)
}

func TestCommentMissingPost(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	mutator := NewMutator(stores)
	alice := seedUser(t, stores, "alice")

	_, err := mutator.CommentOnPost(ctx, alice.Id, "no-such-post", "hi")
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
