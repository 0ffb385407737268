// Package feed composes read-only post queries into denormalized view models:
// each post's author reference and every comment's author reference is
// expanded into a profile document with the credential scrubbed.
package feed

import (
	"context"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
)

// PostView is a post with author references expanded for the API response.
type PostView struct {
	Id        string        `json:"_id"`
	User      model.User    `json:"user"`
	Text      string        `json:"text,omitempty"`
	Img       string        `json:"img,omitempty"`
	Likes     []string      `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt string        `json:"createdAt"`
}

type CommentView struct {
	Id        string     `json:"_id"`
	Text      string     `json:"text"`
	User      model.User `json:"user"`
	CreatedAt string     `json:"createdAt"`
}

// Assembler builds post views from injected stores.
type Assembler struct {
	users store.UserStore
	posts store.PostStore
}

func NewAssembler(s store.Stores) *Assembler {
	return &Assembler{users: s.Users, posts: s.Posts}
}

// AllPosts returns every post, newest first.
func (a *Assembler) AllPosts(ctx context.Context) ([]PostView, error) {
	posts, err := a.posts.All(ctx)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts)
}

// UserPosts returns the posts authored by the user with the given handle,
// newest first.
func (a *Assembler) UserPosts(ctx context.Context, username string) ([]PostView, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("User not found")
	}
	posts, err := a.posts.ByAuthor(ctx, user.Id)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts)
}

// LikedPosts returns the posts the given user has liked, in store order.
func (a *Assembler) LikedPosts(ctx context.Context, userID string) ([]PostView, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("User not found")
	}
	posts, err := a.posts.ByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts)
}

// FollowingFeed returns the posts authored by users the actor follows, newest
// first.
func (a *Assembler) FollowingFeed(ctx context.Context, userID string) ([]PostView, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("User not found")
	}
	posts, err := a.posts.ByAuthors(ctx, user.Following)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts)
}

// assemble expands author references in a single batched user lookup. Authors
// that no longer exist come back as empty profiles carrying only the id.
func (a *Assembler) assemble(ctx context.Context, posts []model.Post) ([]PostView, error) {
	ids := []string{}
	seen := map[string]bool{}
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		add(p.UserId)
		for _, c := range p.Comments {
			add(c.UserId)
		}
	}

	users, err := a.users.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := map[string]model.User{}
	for _, u := range users {
		byID[u.Id] = u.Scrubbed()
	}
	profile := func(id string) model.User {
		if u, ok := byID[id]; ok {
			return u
		}
		return model.User{Id: id}
	}

	views := []PostView{}
	for _, p := range posts {
		view := PostView{
			Id:        p.Id,
			User:      profile(p.UserId),
			Text:      p.Text,
			Img:       p.Img,
			Likes:     p.Likes,
			Comments:  []CommentView{},
			CreatedAt: p.CreatedAt.Format(timeFormat),
		}
		if view.Likes == nil {
			view.Likes = []string{}
		}
		for _, c := range p.Comments {
			view.Comments = append(view.Comments, CommentView{
				Id:        c.Id,
				Text:      c.Text,
				User:      profile(c.UserId),
				CreatedAt: c.CreatedAt.Format(timeFormat),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// timeFormat matches the wire format the frontend already parses.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"
