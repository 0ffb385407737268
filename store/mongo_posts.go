package store

import (
	"context"

	"github.com/featherdev/chirp/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPostStore struct {
	col *mongo.Collection
}

// Feeds sort on creation time only, newest first.
var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

func (s *mongoPostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error reading post")
	}
	return &post, nil
}

func (s *mongoPostStore) Create(ctx context.Context, post *model.Post) error {
	_, err := s.col.InsertOne(ctx, post)
	return errors.Wrap(err, "error inserting post")
}

func (s *mongoPostStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "error deleting post")
}

func (s *mongoPostStore) AddLiker(ctx context.Context, postID, userID string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$addToSet": bson.M{"likes": userID}})
	return errors.Wrap(err, "error adding liker")
}

func (s *mongoPostStore) RemoveLiker(ctx context.Context, postID, userID string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"likes": userID}})
	return errors.Wrap(err, "error removing liker")
}

func (s *mongoPostStore) AppendComment(ctx context.Context, postID string, comment model.Comment) error {
	// $push, not $addToSet: comments are an append-only sequence, duplicates
	// included, in insertion order.
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"comments": comment}})
	return errors.Wrap(err, "error appending comment")
}

func (s *mongoPostStore) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]model.Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "error reading posts")
	}
	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "error decoding posts")
	}
	return posts, nil
}

func (s *mongoPostStore) All(ctx context.Context) ([]model.Post, error) {
	return s.find(ctx, bson.M{}, newestFirst)
}

func (s *mongoPostStore) ByAuthor(ctx context.Context, authorID string) ([]model.Post, error) {
	return s.find(ctx, bson.M{"userId": authorID}, newestFirst)
}

func (s *mongoPostStore) ByAuthors(ctx context.Context, authorIDs []string) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}
	return s.find(ctx, bson.M{"userId": bson.M{"$in": authorIDs}}, newestFirst)
}

// ByIDs intentionally has no sort: the liked-posts feed keeps the store's
// natural order.
func (s *mongoPostStore) ByIDs(ctx context.Context, ids []string) ([]model.Post, error) {
	if len(ids) == 0 {
		return []model.Post{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}
