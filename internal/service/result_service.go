package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	"github.com/yourusername/assessment-portal/internal/domain/repository"
	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/service/scoring"
)

const (
	// submitLockTTL ограничивает время жизни блокировки, если процесс упал, не сняв её
	submitLockTTL = 10 * time.Second
	// submitLockWait и submitLockRetries задают ожидание занятой блокировки
	submitLockWait    = 100 * time.Millisecond
	submitLockRetries = 20

	weeklyBuckets = 5
)

// attendancePlaceholder — фиксированный ряд посещаемости для графика дашборда.
// Реальных данных о посещаемости в системе нет.
var attendancePlaceholder = [scoring.MonthsInYear]float64{90, 85, 92, 88, 95, 91, 89, 93, 94, 91, 93, 90}

// ResultService отвечает за приём результатов тестов и агрегацию профиля
type ResultService struct {
	userRepo   repository.UserRepository
	resultRepo repository.TestResultRepository
	lockRepo   repository.LockRepository

	now   func() time.Time
	newID func() string
}

// NewResultService создает новый сервис результатов
func NewResultService(
	userRepo repository.UserRepository,
	resultRepo repository.TestResultRepository,
	lockRepo repository.LockRepository,
) *ResultService {
	return &ResultService{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		lockRepo:   lockRepo,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// SubmitResult сохраняет результат теста и пересчитывает общий балл пользователя.
//
// Последовательность «добавить → прочитать все → посчитать среднее → записать»
// не атомарна в хранилище. Параллельные сдачи одного пользователя сериализуются
// блокировкой в Redis; если блокировка недоступна, работает last-write-wins.
func (s *ResultService) SubmitResult(ctx context.Context, userID, topic string, score, totalQuestions int) (*entity.TestResult, error) {
	if !entity.IsKnownTopic(topic) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	percentage, err := scoring.Percentage(score, totalQuestions)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	release := s.acquireSubmitLock(ctx, userID)
	defer release()

	result := &entity.TestResult{
		ID:             s.newID(),
		UserID:         userID,
		Topic:          topic,
		Score:          score,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		Timestamp:      s.now(),
	}
	if err := s.resultRepo.Add(ctx, userID, result); err != nil {
		log.Printf("[ResultService] Ошибка сохранения результата для пользователя %s: %v", userID, err)
		return nil, err
	}

	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[ResultService] Ошибка чтения результатов пользователя %s: %v", userID, err)
		return nil, err
	}

	overall := scoring.OverallScore(results)
	if err := s.userRepo.UpdateOverallScore(ctx, userID, overall); err != nil {
		log.Printf("[ResultService] Ошибка обновления overallScore пользователя %s: %v", userID, err)
		return nil, err
	}

	log.Printf("[ResultService] Пользователь %s сдал тест %s: %.2f%%, общий балл %.2f (%d тестов)",
		userID, topic, percentage, overall, len(results))
	return result, nil
}

// acquireSubmitLock пытается захватить блокировку пользователя.
// Ошибки Redis не блокируют сдачу (fail-open). Возвращает функцию снятия блокировки.
func (s *ResultService) acquireSubmitLock(ctx context.Context, userID string) func() {
	key := "submit:" + userID
	for attempt := 0; attempt < submitLockRetries; attempt++ {
		token, ok, err := s.lockRepo.Acquire(ctx, key, submitLockTTL)
		if err != nil {
			log.Printf("[ResultService] Блокировка %s недоступна: %v. Продолжаем без неё.", key, err)
			return func() {}
		}
		if ok {
			return func() {
				if err := s.lockRepo.Release(context.Background(), key, token); err != nil {
					log.Printf("[ResultService] Не удалось снять блокировку %s: %v", key, err)
				}
			}
		}

		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(submitLockWait):
		}
	}
	log.Printf("[ResultService] Блокировка %s занята дольше ожидаемого, продолжаем без неё", key)
	return func() {}
}

// GetProfile возвращает профиль пользователя с вычисленными курсами и динамикой.
// Производные поля считаются заново при каждом запросе.
func (s *ResultService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[ResultService] Ошибка чтения результатов пользователя %s: %v", userID, err)
		return nil, err
	}

	monthly := scoring.MonthlyBest(results)

	return &dto.UserProfileDTO{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		RegisterNumber:  user.RegisterNumber,
		Degree:          user.Degree,
		Batch:           user.Batch,
		College:         user.College,
		LastUpdated:     user.LastUpdated,
		OverallScore:    user.OverallScore,
		ProfileImageURL: user.ProfileImageURL,
		Courses:         scoring.CourseProgress(results, entity.TopicCatalogSize),
		Performance: dto.PerformanceDTO{
			Monthly: dto.SeriesDTO{
				Exam:       monthly[:],
				Attendance: append([]float64(nil), attendancePlaceholder[:]...),
			},
			Weekly: dto.SeriesDTO{
				Exam:       make([]float64, weeklyBuckets),
				Attendance: make([]float64, weeklyBuckets),
			},
		},
	}, nil
}
