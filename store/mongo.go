package store

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection         = "users"
	postsCollection         = "posts"
	notificationsCollection = "notifications"

	defaultMongoURI = "mongodb://localhost:27017/?directConnection=true"
	defaultDBName   = "chirp"
)

// Connect dials MongoDB using MONGO_URI / MONGO_DB from the environment and
// verifies the connection with a ping.
func Connect(ctx context.Context) (*mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = defaultMongoURI
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = defaultDBName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "mongodb cannot be reached after connecting")
	}
	return client.Database(dbName), nil
}

// NewMongoStores wires the three collection stores over a connected database.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:         &mongoUserStore{col: db.Collection(usersCollection)},
		Posts:         &mongoPostStore{col: db.Collection(postsCollection)},
		Notifications: &mongoNotificationStore{col: db.Collection(notificationsCollection)},
	}
}
