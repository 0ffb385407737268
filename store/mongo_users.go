package store

import (
	"context"

	"github.com/featherdev/chirp/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUserStore struct {
	col *mongo.Collection
}

func (s *mongoUserStore) getOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading user")
	}
	return &user, nil
}

func (s *mongoUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.getOne(ctx, bson.M{"_id": id})
}

func (s *mongoUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getOne(ctx, bson.M{"username": username})
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getOne(ctx, bson.M{"email": email})
}

func (s *mongoUserStore) GetMany(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "error reading users by ids")
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "error decoding users")
	}
	return users, nil
}

func (s *mongoUserStore) Create(ctx context.Context, user *model.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return errors.Wrap(err, "error inserting user")
}

func (s *mongoUserStore) Update(ctx context.Context, user *model.User) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": user.Id}, user)
	return errors.Wrap(err, "error updating user")
}

// addToSet and pull are the two primitives behind every follow/like edge
// update. $addToSet rather than $push keeps the id sets duplicate-free even
// when two identical requests race.
func (s *mongoUserStore) addToSet(ctx context.Context, userID, field, value string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{field: value}})
	return errors.Wrapf(err, "error adding to %s", field)
}

func (s *mongoUserStore) pull(ctx context.Context, userID, field, value string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{field: value}})
	return errors.Wrapf(err, "error pulling from %s", field)
}

func (s *mongoUserStore) AddFollowing(ctx context.Context, userID, targetID string) error {
	return s.addToSet(ctx, userID, "following", targetID)
}

func (s *mongoUserStore) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return s.pull(ctx, userID, "following", targetID)
}

func (s *mongoUserStore) AddFollower(ctx context.Context, userID, followerID string) error {
	return s.addToSet(ctx, userID, "followers", followerID)
}

func (s *mongoUserStore) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return s.pull(ctx, userID, "followers", followerID)
}

func (s *mongoUserStore) AddLikedPost(ctx context.Context, userID, postID string) error {
	return s.addToSet(ctx, userID, "likedPosts", postID)
}

func (s *mongoUserStore) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return s.pull(ctx, userID, "likedPosts", postID)
}

func (s *mongoUserStore) Sample(ctx context.Context, excludeID string, size int) ([]model.User, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": excludeID}}}},
		bson.D{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "error sampling users")
	}
	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "error decoding sampled users")
	}
	return users, nil
}
