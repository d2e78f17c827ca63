// Package data provides low-level data clients and connection factories.
package data

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/roamlog/api/internal/config"
)

// NewMongoDatabase connects to MongoDB based on environment
// configuration and verifies the connection with a ping.
func NewMongoDatabase(ctx context.Context) (*mongo.Database, error) {
	uri := config.Conf.MongoURI
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	name := config.Conf.MongoDatabase
	if name == "" {
		name = "roamlog"
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client.Database(name), nil
}
