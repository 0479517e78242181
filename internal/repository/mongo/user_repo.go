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

// UserRepo реализует repository.UserRepository поверх коллекции users
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(database.UsersCollection)}
}

// Create записывает документ пользователя, перезаписывая существующий с тем же id
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, options.Replace().SetUpsert(true))
	return mapError(err)
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// UpdateProfile частично обновляет документ ($set), не трогая остальные поля
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.set(ctx, id, bson.M(updates))
}

// UpdateOverallScore сохраняет пересчитанный общий балл
func (r *UserRepo) UpdateOverallScore(ctx context.Context, id string, score float64) error {
	return r.set(ctx, id, bson.M{"overallScore": score})
}

// UpdateProfileImage сохраняет URL аватара
func (r *UserRepo) UpdateProfileImage(ctx context.Context, id string, url string) error {
	return r.set(ctx, id, bson.M{"profileImageUrl": url})
}

func (r *UserRepo) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetLeaderboard возвращает до limit пользователей по убыванию overallScore.
// Вторичная сортировка по _id делает порядок равных баллов детерминированным.
func (r *UserRepo) GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "overallScore", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	users := make([]entity.User, 0, limit)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}
