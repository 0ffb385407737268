package feed

import (
	"context"
	"testing"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
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
	}
	require.NoError(t, s.Users.Create(context.Background(), user))
	return user
}

func seedPostAt(t *testing.T, s store.Stores, authorID, text string, createdAt time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		Id:        uuid.New().String(),
		UserId:    authorID,
		Text:      text,
		Likes:     []string{},
		Comments:  []model.Comment{},
		CreatedAt: createdAt,
	}
	require.NoError(t, s.Posts.Create(context.Background(), post))
	return post
}

func TestAllPostsSinglePostScenario(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	seedPostAt(t, stores, alice.Id, "hello", time.Now())

	views, err := assembler.AllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, "hello", view.Text)
	require.Equal(t, []string{}, view.Likes)
	require.Equal(t, []CommentView{}, view.Comments)
	require.NotEmpty(t, view.CreatedAt)

	// author populated, credential scrubbed
	require.Equal(t, "alice", view.User.Username)
	require.Empty(t, view.User.Password)
	require.Empty(t, cmp.Diff(alice.Scrubbed(), view.User, cmpopts.EquateEmpty()))
}

func TestAllPostsEmptyStore(t *testing.T) {
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	views, err := assembler.AllPosts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []PostView{}, views)
}

func TestAllPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	base := time.Now()
	seedPostAt(t, stores, alice.Id, "oldest", base.Add(-2*time.Hour))
	seedPostAt(t, stores, alice.Id, "newest", base)
	seedPostAt(t, stores, alice.Id, "middle", base.Add(-time.Hour))

	views, err := assembler.AllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	require.Equal(t, "newest", views[0].Text)
	require.Equal(t, "middle", views[1].Text)
	require.Equal(t, "oldest", views[2].Text)
}

func TestUserPosts(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	seedPostAt(t, stores, alice.Id, "from alice", time.Now())
	seedPostAt(t, stores, bob.Id, "from bob", time.Now())

	views, err := assembler.UserPosts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "from alice", views[0].Text)

	_, err = assembler.UserPosts(ctx, "nobody")
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestFollowingFeedFiltersByFollowedAuthors(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	carol := seedUser(t, stores, "carol")
	require.NoError(t, stores.Users.AddFollowing(ctx, carol.Id, alice.Id))

	seedPostAt(t, stores, alice.Id, "from alice", time.Now())
	seedPostAt(t, stores, bob.Id, "from bob", time.Now())

	views, err := assembler.FollowingFeed(ctx, carol.Id)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "from alice", views[0].Text)

	// following nobody means an empty feed, not an error
	views, err = assembler.FollowingFeed(ctx, bob.Id)
	require.NoError(t, err)
	require.Equal(t, []PostView{}, views)
}

func TestLikedPostsKeepsStoreOrder(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	base := time.Now()
	first := seedPostAt(t, stores, alice.Id, "first", base)
	second := seedPostAt(t, stores, alice.Id, "second", base.Add(time.Hour))

	require.NoError(t, stores.Users.AddLikedPost(ctx, bob.Id, first.Id))
	require.NoError(t, stores.Users.AddLikedPost(ctx, bob.Id, second.Id))

	views, err := assembler.LikedPosts(ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, views, 2)
	// insertion order, not newest first
	require.Equal(t, "first", views[0].Text)
	require.Equal(t, "second", views[1].Text)
}

func TestCommentAuthorsPopulatedAndScrubbed(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	alice := seedUser(t, stores, "alice")
	bob := seedUser(t, stores, "bob")
	post := seedPostAt(t, stores, alice.Id, "hello", time.Now())
	require.NoError(t, stores.Posts.AppendComment(ctx, post.Id, model.Comment{
		Id:        uuid.New().String(),
		Text:      "hi there",
		UserId:    bob.Id,
		CreatedAt: time.Now(),
	}))

	views, err := assembler.AllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Comments, 1)
	require.Equal(t, "bob", views[0].Comments[0].User.Username)
	require.Empty(t, views[0].Comments[0].User.Password)
}

func TestSuggestedUsers(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	actor := seedUser(t, stores, "actor")

	// only two candidates exist: both are returned, not four
	seedUser(t, stores, "one")
	seedUser(t, stores, "two")
	suggested, err := assembler.SuggestedUsers(ctx, actor.Id)
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	for _, u := range suggested {
		require.NotEqual(t, actor.Id, u.Id)
		require.Empty(t, u.Password)
	}

	// with plenty of candidates the result caps at four
	for _, name := range []string{"three", "four", "five", "six", "seven"} {
		seedUser(t, stores, name)
	}
	suggested, err = assembler.SuggestedUsers(ctx, actor.Id)
	require.NoError(t, err)
	require.Len(t, suggested, 4)
}

func TestSuggestedUsersExcludesFollowed(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemoryStores()
	assembler := NewAssembler(stores)

	actor := seedUser(t, stores, "actor")
	followed := seedUser(t, stores, "followed")
	other := seedUser(t, stores, "other")
	require.NoError(t, stores.Users.AddFollowing(ctx, actor.Id, followed.Id))

	suggested, err := assembler.SuggestedUsers(ctx, actor.Id)
	require.NoError(t, err)
	require.Len(t, suggested, 1)
	require.Equal(t, other.Id, suggested[0].Id)
}
