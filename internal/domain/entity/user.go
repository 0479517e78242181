package entity

import (
	"time"
)

// LastUpdatedLayout — формат поля lastUpdated (дд/мм/гггг чч:мм AM/PM)
const LastUpdatedLayout = "02/01/2006 03:04 PM"

// CourseSummary хранит счётчики пройденных и оставшихся курсов
type CourseSummary struct {
	Completed  int `bson:"completed" gorm:"column:courses_completed;not null;default:0" json:"completed"`
	InProgress int `bson:"inProgress" gorm:"column:courses_in_progress;not null;default:0" json:"inProgress"`
}

// User представляет студента портала.
// ID — непрозрачный uid, который присылает клиент при регистрации.
type User struct {
	ID              string        `bson:"_id" gorm:"primaryKey;size:128" json:"id"`
	Name            string        `bson:"name" gorm:"size:200;not null;default:''" json:"name"`
	Email           string        `bson:"email" gorm:"size:200;not null;default:''" json:"email"`
	RegisterNumber  string        `bson:"registerNumber" gorm:"column:register_number;size:100;not null;default:''" json:"registerNumber"`
	Degree          string        `bson:"degree" gorm:"size:100;not null;default:''" json:"degree"`
	Batch           string        `bson:"batch" gorm:"size:50;not null;default:''" json:"batch"`
	College         string        `bson:"college" gorm:"size:200;not null;default:''" json:"college"`
	LastUpdated     string        `bson:"lastUpdated" gorm:"column:last_updated;size:32;not null;default:''" json:"lastUpdated"`
	Courses         CourseSummary `bson:"courses" gorm:"embedded" json:"courses"`
	OverallScore    float64       `bson:"overallScore" gorm:"column:overall_score;not null;default:0;index:idx_users_leaderboard,sort:desc" json:"overallScore"`
	ProfileImageURL string        `bson:"profileImageUrl,omitempty" gorm:"column:profile_image_url;size:500;not null;default:''" json:"profileImageUrl,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// Touch обновляет lastUpdated текущим временем в формате портала
func (u *User) Touch(now time.Time) {
	u.LastUpdated = FormatLastUpdated(now)
}

// FormatLastUpdated форматирует время для поля lastUpdated
func FormatLastUpdated(t time.Time) string {
	return t.Format(LastUpdatedLayout)
}

// EditableProfileFields — поля профиля, которые пользователь может менять
// через /api/user/:id/update. Ключи совпадают с JSON/BSON именами.
var EditableProfileFields = map[string]string{
	"name":           "name",
	"email":          "email",
	"registerNumber": "register_number",
	"degree":         "degree",
	"batch":          "batch",
	"college":        "college",
}
