// Package engagement holds the social-graph mutation core: the follow, like
// and comment toggles and their coupled side effects. Every operation is a
// handful of single-document store updates performed in sequence; there is no
// cross-document transaction, so a failure between the two halves of a toggle
// can leave the redundant sets disagreeing until corrected out of band. That
// weakness is inherited from the system this replaces and is kept on purpose.
package engagement

import (
	"context"
	"time"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/store"
	"github.com/featherdev/chirp/utils"
	Logger "github.com/featherdev/chirp/utils/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Mutator performs follow/unfollow, like/unlike and comment mutations over
// injected stores.
type Mutator struct {
	users         store.UserStore
	posts         store.PostStore
	notifications store.NotificationStore
}

func NewMutator(s store.Stores) *Mutator {
	return &Mutator{
		users:         s.Users,
		posts:         s.Posts,
		notifications: s.Notifications,
	}
}

// FollowUnfollow toggles the follow relationship from actor to target and
// returns the new state (true = now following). A brand-new follow also
// notifies the target; an unfollow never does.
func (m *Mutator) FollowUnfollow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, utils.InvalidOperation("You cannot follow/unfollow yourself")
	}

	actor, err := m.users.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	target, err := m.users.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	if actor == nil || target == nil {
		return false, utils.NotFound("User not found")
	}

	if utils.ContainsString(actor.Following, targetID) {
		// Two independent updates; the relationship invariant holds only if
		// both succeed.
		if err := m.users.RemoveFollower(ctx, targetID, actorID); err != nil {
			return false, err
		}
		if err := m.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
			return false, err
		}
		Logger.Log.Info("user unfollowed, actor: ", actorID, " target: ", targetID)
		return false, nil
	}

	if err := m.users.AddFollower(ctx, targetID, actorID); err != nil {
		return false, err
	}
	if err := m.users.AddFollowing(ctx, actorID, targetID); err != nil {
		return false, err
	}
	if err := m.notify(ctx, actorID, targetID, model.NotificationTypeFollow); err != nil {
		return false, err
	}
	Logger.Log.Info("user followed, actor: ", actorID, " target: ", targetID)
	return true, nil
}

// LikeUnlike toggles actor's like on the post and returns the new state along
// with the updated post document. A new like notifies the post author, even
// when the author likes their own post.
func (m *Mutator) LikeUnlike(ctx context.Context, actorID, postID string) (bool, *model.Post, error) {
	post, err := m.posts.GetByID(ctx, postID)
	if err != nil {
		return false, nil, err
	}
	if post == nil {
		return false, nil, utils.NotFound("Post not found")
	}

	liked := post.LikedBy(actorID)
	if liked {
		if err := m.posts.RemoveLiker(ctx, postID, actorID); err != nil {
			return false, nil, err
		}
		if err := m.users.RemoveLikedPost(ctx, actorID, postID); err != nil {
			return false, nil, err
		}
	} else {
		if err := m.posts.AddLiker(ctx, postID, actorID); err != nil {
			return false, nil, err
		}
		if err := m.users.AddLikedPost(ctx, actorID, postID); err != nil {
			return false, nil, err
		}
		if err := m.notify(ctx, actorID, post.UserId, model.NotificationTypeLike); err != nil {
			return false, nil, err
		}
	}

	updated, err := m.posts.GetByID(ctx, postID)
	if err != nil {
		return false, nil, err
	}
	if updated == nil {
		// deleted between the update and the re-read; report the post gone
		return false, nil, utils.NotFound("Post not found")
	}
	return !liked, updated, nil
}

// CommentOnPost appends a comment to the post and returns the updated post.
// Comments never notify anyone.
func (m *Mutator) CommentOnPost(ctx context.Context, actorID, postID, text string) (*model.Post, error) {
	if text == "" {
		return nil, utils.InvalidInput("Please provide a comment")
	}

	post, err := m.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, utils.NotFound("Post not found")
	}

	comment := model.Comment{
		Id:        uuid.New().String(),
		Text:      text,
		UserId:    actorID,
		CreatedAt: time.Now(),
	}
	if err := m.posts.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	updated, err := m.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NotFound("Post not found")
	}
	return updated, nil
}

func (m *Mutator) notify(ctx context.Context, from, to, notificationType string) error {
	n := &model.Notification{
		Id:        uuid.New().String(),
		From:      from,
		To:        to,
		Type:      notificationType,
		CreatedAt: time.Now(),
	}
	return errors.Wrap(m.notifications.Append(ctx, n), "error appending notification")
}
