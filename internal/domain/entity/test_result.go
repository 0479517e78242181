package entity

import (
	"time"
)

// TestResult — результат одного прохождения теста пользователем.
// Создаётся при сдаче теста и больше не изменяется.
type TestResult struct {
	ID             string    `bson:"_id" gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `bson:"userId" gorm:"column:user_id;size:128;not null;index:idx_test_results_user" json:"userId"`
	Topic          string    `bson:"topic" gorm:"size:50;not null" json:"topic"`
	Score          int       `bson:"score" gorm:"not null" json:"score"`
	TotalQuestions int       `bson:"totalQuestions" gorm:"column:total_questions;not null" json:"totalQuestions"`
	Percentage     float64   `bson:"percentage" gorm:"not null" json:"percentage"`
	Timestamp      time.Time `bson:"timestamp" gorm:"not null;index:idx_test_results_user" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (TestResult) TableName() string {
	return "test_results"
}
