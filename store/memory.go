package store

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/utils"
)

// memState is the shared backing state of the in-memory stores. All three
// store views lock the same mutex, mirroring the single database they stand
// in for. Posts live in a slice so the "natural order" queries behave like
// Mongo's insertion order.
type memState struct {
	mu            sync.Mutex
	users         map[string]*model.User
	posts         []*model.Post
	notifications []*model.Notification
	rand          *rand.Rand
}

// NewMemoryStores returns stores backed by process memory. Intended for tests
// and local development without a database.
func NewMemoryStores() Stores {
	state := &memState{
		users: map[string]*model.User{},
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	return Stores{
		Users:         &memUserStore{state},
		Posts:         &memPostStore{state},
		Notifications: &memNotificationStore{state},
	}
}

func cloneUser(u *model.User) *model.User {
	out := *u
	out.Followers = append([]string{}, u.Followers...)
	out.Following = append([]string{}, u.Following...)
	out.LikedPosts = append([]string{}, u.LikedPosts...)
	return &out
}

func clonePost(p *model.Post) *model.Post {
	out := *p
	out.Likes = append([]string{}, p.Likes...)
	out.Comments = append([]model.Comment{}, p.Comments...)
	return &out
}

type memUserStore struct {
	s *memState
}

func (m *memUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (m *memUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (m *memUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (m *memUserStore) GetMany(ctx context.Context, ids []string) ([]model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	users := []model.User{}
	for _, id := range ids {
		if u, ok := m.s.users[id]; ok {
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

func (m *memUserStore) Create(ctx context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[user.Id] = cloneUser(user)
	return nil
}

func (m *memUserStore) Update(ctx context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[user.Id] = cloneUser(user)
	return nil
}

func (m *memUserStore) mutate(userID string, fn func(u *model.User)) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[userID]; ok {
		fn(u)
	}
	return nil
}

func (m *memUserStore) AddFollowing(ctx context.Context, userID, targetID string) error {
	return m.mutate(userID, func(u *model.User) {
		if !utils.ContainsString(u.Following, targetID) {
			u.Following = append(u.Following, targetID)
		}
	})
}

func (m *memUserStore) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return m.mutate(userID, func(u *model.User) {
		u.Following = utils.RemoveString(u.Following, targetID)
	})
}

func (m *memUserStore) AddFollower(ctx context.Context, userID, followerID string) error {
	return m.mutate(userID, func(u *model.User) {
		if !utils.ContainsString(u.Followers, followerID) {
			u.Followers = append(u.Followers, followerID)
		}
	})
}

func (m *memUserStore) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return m.mutate(userID, func(u *model.User) {
		u.Followers = utils.RemoveString(u.Followers, followerID)
	})
}

func (m *memUserStore) AddLikedPost(ctx context.Context, userID, postID string) error {
	return m.mutate(userID, func(u *model.User) {
		if !utils.ContainsString(u.LikedPosts, postID) {
			u.LikedPosts = append(u.LikedPosts, postID)
		}
	})
}

func (m *memUserStore) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return m.mutate(userID, func(u *model.User) {
		u.LikedPosts = utils.RemoveString(u.LikedPosts, postID)
	})
}

func (m *memUserStore) Sample(ctx context.Context, excludeID string, size int) ([]model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	candidates := []*model.User{}
	for _, u := range m.s.users {
		if u.Id != excludeID {
			candidates = append(candidates, u)
		}
	}
	// shuffle deterministically under the lock, then truncate
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Id < candidates[j].Id })
	m.s.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > size {
		candidates = candidates[:size]
	}
	users := []model.User{}
	for _, u := range candidates {
		users = append(users, *cloneUser(u))
	}
	return users, nil
}

type memPostStore struct {
	s *memState
}

func (m *memPostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.posts {
		if p.Id == id {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (m *memPostStore) Create(ctx context.Context, post *model.Post) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.posts = append(m.s.posts, clonePost(post))
	return nil
}

func (m *memPostStore) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	posts := m.s.posts[:0]
	for _, p := range m.s.posts {
		if p.Id != id {
			posts = append(posts, p)
		}
	}
	m.s.posts = posts
	return nil
}

func (m *memPostStore) mutate(postID string, fn func(p *model.Post)) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.posts {
		if p.Id == postID {
			fn(p)
			return nil
		}
	}
	return nil
}

func (m *memPostStore) AddLiker(ctx context.Context, postID, userID string) error {
	return m.mutate(postID, func(p *model.Post) {
		if !utils.ContainsString(p.Likes, userID) {
			p.Likes = append(p.Likes, userID)
		}
	})
}

func (m *memPostStore) RemoveLiker(ctx context.Context, postID, userID string) error {
	return m.mutate(postID, func(p *model.Post) {
		p.Likes = utils.RemoveString(p.Likes, userID)
	})
}

func (m *memPostStore) AppendComment(ctx context.Context, postID string, comment model.Comment) error {
	return m.mutate(postID, func(p *model.Post) {
		p.Comments = append(p.Comments, comment)
	})
}

func (m *memPostStore) collect(match func(p *model.Post) bool, sorted bool) []model.Post {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	posts := []model.Post{}
	for _, p := range m.s.posts {
		if match(p) {
			posts = append(posts, *clonePost(p))
		}
	}
	if sorted {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
	return posts
}

func (m *memPostStore) All(ctx context.Context) ([]model.Post, error) {
	return m.collect(func(p *model.Post) bool { return true }, true), nil
}

func (m *memPostStore) ByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	return m.collect(func(p *model.Post) bool { return p.UserId == authorID }, true), nil
}

func (m *memPostStore) ByAuthors(ctx context.Context, authorIDs []string) ([]model.Post, error) {
	return m.collect(func(p *model.Post) bool { return utils.ContainsString(authorIDs, p.UserId) }, true), nil
}

func (m *memPostStore) ByIDs(ctx context.Context, ids []string) ([]model.Post, error) {
	return m.collect(func(p *model.Post) bool { return utils.ContainsString(ids, p.Id) }, false), nil
}

type memNotificationStore struct {
	s *memState
}

func (m *memNotificationStore) Append(ctx context.Context, n *model.Notification) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	copied := *n
	m.s.notifications = append(m.s.notifications, &copied)
	return nil
}

func (m *memNotificationStore) ByRecipient(ctx context.Context, userID string) ([]model.Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	notifications := []model.Notification{}
	for _, n := range m.s.notifications {
		if n.To == userID {
			notifications = append(notifications, *n)
		}
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}
