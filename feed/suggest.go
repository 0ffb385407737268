package feed

import (
	"context"

	"github.com/featherdev/chirp/model"
	"github.com/featherdev/chirp/utils"
)

const (
	// suggestSampleSize is how many random candidates are pulled from the
	// store before filtering; suggestLimit caps the final result. Filtering
	// already-followed users can leave fewer than suggestLimit, which is fine.
	suggestSampleSize = 10
	suggestLimit      = 4
)

// SuggestedUsers picks up to 4 random users the actor does not already follow.
func (a *Assembler) SuggestedUsers(ctx context.Context, actorID string) ([]model.User, error) {
	actor, err := a.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, utils.NotFound("User not found")
	}

	candidates, err := a.users.Sample(ctx, actorID, suggestSampleSize)
	if err != nil {
		return nil, err
	}

	suggested := []model.User{}
	for _, candidate := range candidates {
		if utils.ContainsString(actor.Following, candidate.Id) {
			continue
		}
		suggested = append(suggested, candidate.Scrubbed())
		if len(suggested) == suggestLimit {
			break
		}
	}
	return suggested, nil
}
