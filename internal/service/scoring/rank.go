package scoring

import (
	"sort"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
)

// RankedUser — пользователь с присвоенным местом в лидерборде
type RankedUser struct {
	Rank int
	User entity.User
}

// Rank сортирует пользователей по убыванию overallScore, при равенстве — по id
// по возрастанию, обрезает до n и присваивает места 1..n.
// Хранилище уже отдаёт упорядоченный список, но порядок равных баллов
// зависит от драйвера, поэтому сортировка повторяется здесь.
func Rank(users []entity.User, n int) []RankedUser {
	sorted := make([]entity.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OverallScore != sorted[j].OverallScore {
			return sorted[i].OverallScore > sorted[j].OverallScore
		}
		return sorted[i].ID < sorted[j].ID
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]RankedUser, len(sorted))
	for i, u := range sorted {
		ranked[i] = RankedUser{Rank: i + 1, User: u}
	}
	return ranked
}
