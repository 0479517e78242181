package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций хранилища документов
const (
	UsersCollection       = "users"
	TestResultsCollection = "test_results"
)

// NewMongoDB подключается к MongoDB, проверяет соединение пингом
// и возвращает клиент вместе с выбранной базой данных.
func NewMongoDB(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("[MongoDB] Используется база данных: %s", dbName)
	return client, client.Database(dbName), nil
}
