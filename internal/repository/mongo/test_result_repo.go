package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
	"github.com/yourusername/assessment-portal/pkg/database"
)

// TestResultRepo хранит результаты в отдельной коллекции, связанной с users по userId
type TestResultRepo struct {
	users   *mongo.Collection
	results *mongo.Collection
}

// NewTestResultRepo создает новый репозиторий результатов тестов
func NewTestResultRepo(db *mongo.Database) *TestResultRepo {
	return &TestResultRepo{
		users:   db.Collection(database.UsersCollection),
		results: db.Collection(database.TestResultsCollection),
	}
}

// Add добавляет результат теста. Родительский документ должен существовать.
func (r *TestResultRepo) Add(ctx context.Context, userID string, result *entity.TestResult) error {
	n, err := r.users.CountDocuments(ctx, bson.M{"_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}

	result.UserID = userID
	_, err = r.results.InsertOne(ctx, result)
	return mapError(err)
}

// ListByUser возвращает все результаты пользователя в порядке сдачи
func (r *TestResultRepo) ListByUser(ctx context.Context, userID string) ([]entity.TestResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.results.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	results := make([]entity.TestResult, 0)
	for cursor.Next(ctx) {
		var tr entity.TestResult
		if err := cursor.Decode(&tr); err != nil {
			return nil, mapError(err)
		}
		results = append(results, tr)
	}
	if err := cursor.Err(); err != nil {
		return nil, mapError(err)
	}
	return results, nil
}
