package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateOverallScore(ctx context.Context, id string, score float64) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfileImage(ctx context.Context, id string, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockUserRepository) GetLeaderboard(ctx context.Context, limit int) ([]entity.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockTestResultRepository реализует repository.TestResultRepository
type MockTestResultRepository struct {
	mock.Mock
}

func (m *MockTestResultRepository) Add(ctx context.Context, userID string, result *entity.TestResult) error {
	args := m.Called(ctx, userID, result)
	return args.Error(0)
}

func (m *MockTestResultRepository) ListByUser(ctx context.Context, userID string) ([]entity.TestResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TestResult), args.Error(1)
}

// MockLockRepository реализует repository.LockRepository
type MockLockRepository struct {
	mock.Mock
}

func (m *MockLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLockRepository) Release(ctx context.Context, key, token string) error {
	args := m.Called(ctx, key, token)
	return args.Error(0)
}

// MockMediaRepository реализует repository.MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Upload(ctx context.Context, data []byte, publicID, folder string) (string, error) {
	args := m.Called(ctx, data, publicID, folder)
	return args.String(0), args.Error(1)
}

// ============================================================================
// In-memory хранилище для сквозных сценариев
// ============================================================================

// memStore реализует UserRepository, TestResultRepository и LockRepository в памяти
type memStore struct {
	mu      sync.Mutex
	users   map[string]entity.User
	results map[string][]entity.TestResult
	locks   map[string]string
	lockSeq int
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]entity.User),
		results: make(map[string][]entity.TestResult),
		locks:   make(map[string]string),
	}
}

func (s *memStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) UpdateProfile(_ context.Context, id string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for k, v := range updates {
		str, _ := v.(string)
		switch k {
		case "name":
			u.Name = str
		case "email":
			u.Email = str
		case "registerNumber":
			u.RegisterNumber = str
		case "degree":
			u.Degree = str
		case "batch":
			u.Batch = str
		case "college":
			u.College = str
		case "lastUpdated":
			u.LastUpdated = str
		}
	}
	s.users[id] = u
	return nil
}

func (s *memStore) UpdateOverallScore(_ context.Context, id string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.OverallScore = score
	s.users[id] = u
	return nil
}

func (s *memStore) UpdateProfileImage(_ context.Context, id string, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.ProfileImageURL = url
	s.users[id] = u
	return nil
}

func (s *memStore) GetLeaderboard(_ context.Context, limit int) ([]entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].OverallScore > users[j].OverallScore })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *memStore) Add(_ context.Context, userID string, result *entity.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return apperrors.ErrNotFound
	}
	s.results[userID] = append(s.results[userID], *result)
	return nil
}

func (s *memStore) ListByUser(_ context.Context, userID string) ([]entity.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.TestResult, len(s.results[userID]))
	copy(out, s.results[userID])
	return out, nil
}

func (s *memStore) Acquire(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.locks[key]; held {
		return "", false, nil
	}
	s.lockSeq++
	token := fmt.Sprintf("t%d", s.lockSeq)
	s.locks[key] = token
	return token, true, nil
}

func (s *memStore) Release(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] == token {
		delete(s.locks, key)
	}
	return nil
}
