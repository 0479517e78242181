// Package scoring содержит чистые функции агрегации результатов тестов:
// процент за тест, общий балл, прогресс по курсам и помесячный максимум.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// MonthsInYear — количество помесячных корзин
const MonthsInYear = 12

// Percentage вычисляет процент правильных ответов: 100*score/totalQuestions.
// totalQuestions <= 0 и score вне [0, totalQuestions] — ошибка валидации,
// чтобы в хранилище не попали NaN/Inf.
func Percentage(score, totalQuestions int) (float64, error) {
	if totalQuestions <= 0 {
		return 0, fmt.Errorf("%w: totalQuestions must be greater than 0", apperrors.ErrValidation)
	}
	if score < 0 || score > totalQuestions {
		return 0, fmt.Errorf("%w: score must be between 0 and totalQuestions", apperrors.ErrValidation)
	}
	return float64(score) / float64(totalQuestions) * 100, nil
}

// Round округляет значение до places знаков после запятой
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// OverallScore — среднее арифметическое процентов по всем результатам,
// округлённое до 2 знаков. Для пустого набора возвращает 0.
func OverallScore(results []entity.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range results {
		total += r.Percentage
	}
	return Round(total/float64(len(results)), 2)
}

// CourseProgress считает завершённые курсы как количество различных тем.
// inProgress = catalogSize - completed, но не меньше нуля (темы вне каталога
// в старых данных могут дать completed > catalogSize).
func CourseProgress(results []entity.TestResult, catalogSize int) entity.CourseSummary {
	topics := make(map[string]struct{}, len(results))
	for _, r := range results {
		topics[r.Topic] = struct{}{}
	}
	completed := len(topics)
	inProgress := catalogSize - completed
	if inProgress < 0 {
		inProgress = 0
	}
	return entity.CourseSummary{Completed: completed, InProgress: inProgress}
}

// MonthlyBest раскладывает результаты по календарным месяцам (без учёта года)
// и хранит максимальный процент в каждой корзине. Пустые месяцы остаются 0.
// Месяц определяется по локальному времени сервера.
func MonthlyBest(results []entity.TestResult) [MonthsInYear]float64 {
	return MonthlyBestIn(results, time.Local)
}

// MonthlyBestIn — MonthlyBest с явной зоной. Хранилища возвращают время
// в разных зонах (Mongo декодирует в UTC), поэтому месяц берётся после перевода в loc.
func MonthlyBestIn(results []entity.TestResult, loc *time.Location) [MonthsInYear]float64 {
	var monthly [MonthsInYear]float64
	for _, r := range results {
		if r.Timestamp.IsZero() {
			continue
		}
		idx := int(r.Timestamp.In(loc).Month()) - 1
		if r.Percentage > monthly[idx] {
			monthly[idx] = r.Percentage
		}
	}
	return monthly
}
