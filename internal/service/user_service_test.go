package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/assessment-portal/internal/domain/entity"
	"github.com/yourusername/assessment-portal/internal/handler/dto"
	apperrors "github.com/yourusername/assessment-portal/internal/pkg/errors"
)

var fixedNow = time.Date(2024, time.June, 5, 14, 7, 0, 0, time.UTC)

func newTestUserService(users *MockUserRepository, media *MockMediaRepository) *UserService {
	s := NewUserService(users, media, DefaultUserServiceConfig())
	s.now = func() time.Time { return fixedNow }
	return s
}

// ============================================================================
// Register
// ============================================================================

func TestUserService_Register_SetsInitialFields(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := new(MockUserRepository)
	var saved *entity.User
	users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.User) }).
		Return(nil)
	s := newTestUserService(users, new(MockMediaRepository))

	// Act
	err := s.Register(ctx, dto.RegisterRequest{
		UID: "u1", Name: "Asha", Email: "asha@example.com", College: "ABC", Batch: "2024",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "u1", saved.ID)
	assert.Equal(t, "ABC", saved.College)
	assert.Equal(t, 0.0, saved.OverallScore)
	assert.Equal(t, entity.CourseSummary{}, saved.Courses)
	assert.Equal(t, "05/06/2024 02:07 PM", saved.LastUpdated)
}

func TestUserService_Register_MissingRequired(t *testing.T) {
	users := new(MockUserRepository)
	s := newTestUserService(users, new(MockMediaRepository))

	err := s.Register(context.Background(), dto.RegisterRequest{UID: "u1", Name: " "})

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// ============================================================================
// UpdateProfile
// ============================================================================

func TestUserService_UpdateProfile_WhitelistsFields(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("UpdateProfile", ctx, "u1", map[string]interface{}{
		"college":     "XYZ",
		"lastUpdated": "05/06/2024 02:07 PM",
	}).Return(nil)
	s := newTestUserService(users, new(MockMediaRepository))

	err := s.UpdateProfile(ctx, "u1", map[string]interface{}{
		"college":      "XYZ",
		"overallScore": 100,
		"isAdmin":      true,
	})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUserService_UpdateProfile_NoAllowedFields(t *testing.T) {
	users := new(MockUserRepository)
	s := newTestUserService(users, new(MockMediaRepository))

	err := s.UpdateProfile(context.Background(), "u1", map[string]interface{}{"overallScore": 99})

	assert.True(t, errors.Is(err, ErrNoUpdatableFields))
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_NonStringValue(t *testing.T) {
	s := newTestUserService(new(MockUserRepository), new(MockMediaRepository))

	err := s.UpdateProfile(context.Background(), "u1", map[string]interface{}{"name": 42})

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("UpdateProfile", ctx, "ghost", mock.Anything).Return(apperrors.ErrNotFound)
	s := newTestUserService(users, new(MockMediaRepository))

	err := s.UpdateProfile(ctx, "ghost", map[string]interface{}{"name": "X"})

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

// ============================================================================
// UploadProfileImage
// ============================================================================

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUserService_UploadProfileImage_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := new(MockUserRepository)
	media := new(MockMediaRepository)
	url := "https://res.cloudinary.com/demo/image/upload/quiz_portal_profiles/u1.jpg"

	users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	media.On("Upload", ctx, mock.AnythingOfType("[]uint8"), "u1", "quiz_portal_profiles").Return(url, nil)
	users.On("UpdateProfileImage", ctx, "u1", url).Return(nil)
	s := newTestUserService(users, media)

	// Act
	got, err := s.UploadProfileImage(ctx, "u1", pngBytes(t, 32, 32))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, url, got)
	users.AssertExpectations(t)
	media.AssertExpectations(t)
}

func TestUserService_UploadProfileImage_UnknownUser(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	media := new(MockMediaRepository)
	users.On("GetByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound)
	s := newTestUserService(users, media)

	_, err := s.UploadProfileImage(ctx, "ghost", []byte("data"))

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UploadProfileImage_MediaFailure(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	media := new(MockMediaRepository)
	users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	media.On("Upload", ctx, mock.Anything, "u1", "quiz_portal_profiles").Return("", apperrors.ErrUpstream)
	s := newTestUserService(users, media)

	_, err := s.UploadProfileImage(ctx, "u1", []byte("not an image"))

	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	users.AssertNotCalled(t, "UpdateProfileImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UploadProfileImage_Empty(t *testing.T) {
	s := newTestUserService(new(MockUserRepository), new(MockMediaRepository))

	_, err := s.UploadProfileImage(context.Background(), "u1", nil)

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

// ============================================================================
// GetLeaderboard
// ============================================================================

func TestUserService_GetLeaderboard_TopN(t *testing.T) {
	// Arrange
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetLeaderboard", ctx, 3).Return([]entity.User{
		{ID: "a", Name: "A", College: "X", OverallScore: 95, ProfileImageURL: "https://img/a.jpg"},
		{ID: "b", Name: "B", College: "Y", OverallScore: 90},
		{ID: "c", Name: "C", College: "Z", OverallScore: 70},
	}, nil)
	s := newTestUserService(users, new(MockMediaRepository))

	// Act
	entries, err := s.GetLeaderboard(ctx, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []float64{95, 90, 70}, []float64{entries[0].Score, entries[1].Score, entries[2].Score})
	assert.Equal(t, "https://img/a.jpg", entries[0].ProfilePic)
	assert.Equal(t, "https://i.stack.imgur.com/34AD2.jpg", entries[1].ProfilePic, "Пустой URL заменяется заглушкой")
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestUserService_GetLeaderboard_LimitBounds(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		expected  int
	}{
		{name: "default when zero", requested: 0, expected: 100},
		{name: "default when negative", requested: -5, expected: 100},
		{name: "capped at max", requested: 1000, expected: 100},
		{name: "passed through", requested: 10, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			users := new(MockUserRepository)
			users.On("GetLeaderboard", ctx, tt.expected).Return([]entity.User{}, nil)
			s := newTestUserService(users, new(MockMediaRepository))

			entries, err := s.GetLeaderboard(ctx, tt.requested)

			require.NoError(t, err)
			assert.Empty(t, entries)
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_GetLeaderboard_StoreError(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	users.On("GetLeaderboard", ctx, 100).Return(nil, apperrors.ErrStoreUnavailable)
	s := newTestUserService(users, new(MockMediaRepository))

	_, err := s.GetLeaderboard(ctx, 0)

	assert.True(t, errors.Is(err, apperrors.ErrStoreUnavailable))
}
