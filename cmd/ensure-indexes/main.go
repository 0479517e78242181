package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourusername/assessment-portal/internal/config"
	"github.com/yourusername/assessment-portal/pkg/database"
)

// indexes — индексы, нужные запросам лидерборда и профиля
var indexes = map[string][]mongo.IndexModel{
	database.UsersCollection: {
		{
			Keys:    bson.D{{Key: "overallScore", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("leaderboard"),
		},
	},
	database.TestResultsCollection: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("user_results"),
		},
	},
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadWithDriver(configPath, config.StoreDriverMongo)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, db, err := database.NewMongoDB(cfg.Credentials.URI, cfg.Credentials.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for coll, models := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			log.Fatalf("Failed to create indexes on %s: %v", coll, err)
		}
		log.Printf("Indexes on %s: %v", coll, names)
	}
	log.Println("All indexes are in place.")
}
