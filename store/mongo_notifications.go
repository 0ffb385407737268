package store

import (
	"context"

	"github.com/featherdev/chirp/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoNotificationStore struct {
	col *mongo.Collection
}

func (s *mongoNotificationStore) Append(ctx context.Context, n *model.Notification) error {
	_, err := s.col.InsertOne(ctx, n)
	return errors.Wrap(err, "error inserting notification")
}

func (s *mongoNotificationStore) ByRecipient(ctx context.Context, userID string) ([]model.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"to": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error reading notifications")
	}
	notifications := []model.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "error decoding notifications")
	}
	return notifications, nil
}
