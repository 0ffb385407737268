// Package store is the canonical place for document persistence. It exposes
// the per-collection primitives the engagement and feed layers are written
// against, so both can run over MongoDB in production and over the in-memory
// double in tests.
//
// Atomicity is per document only. Operations that touch two documents (the
// follow and like toggles) are two independent updates with no cross-document
// transaction; callers own that tradeoff.
package store

import (
	"context"

	"github.com/featherdev/chirp/model"
)

// UserStore accesses the users collection. Lookups return (nil, nil) when no
// document matches; an error always means the store itself failed.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetMany returns the users whose ids are in ids, in no particular order.
	// Missing ids are silently skipped.
	GetMany(ctx context.Context, ids []string) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error

	AddFollowing(ctx context.Context, userID, targetID string) error
	RemoveFollowing(ctx context.Context, userID, targetID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	AddLikedPost(ctx context.Context, userID, postID string) error
	RemoveLikedPost(ctx context.Context, userID, postID string) error

	// Sample returns up to size random users, never including excludeID.
	Sample(ctx context.Context, excludeID string, size int) ([]model.User, error)
}

// PostStore accesses the posts collection. GetByID returns (nil, nil) when the
// post does not exist.
type PostStore interface {
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error

	AddLiker(ctx context.Context, postID, userID string) error
	RemoveLiker(ctx context.Context, postID, userID string) error
	AppendComment(ctx context.Context, postID string, comment model.Comment) error

	// All, ByAuthor and ByAuthors return posts newest first. ByIDs preserves
	// the store's natural order, matching the liked-posts query of the API.
	All(ctx context.Context) ([]model.Post, error)
	ByAuthor(ctx context.Context, authorID string) ([]model.Post, error)
	ByAuthors(ctx context.Context, authorIDs []string) ([]model.Post, error)
	ByIDs(ctx context.Context, ids []string) ([]model.Post, error)
}

// NotificationStore appends and lists engagement notifications. Records are
// never updated or deleted.
type NotificationStore interface {
	Append(ctx context.Context, n *model.Notification) error
	ByRecipient(ctx context.Context, userID string) ([]model.Notification, error)
}

// Stores bundles the three collections for dependency injection.
type Stores struct {
	Users         UserStore
	Posts         PostStore
	Notifications NotificationStore
}
