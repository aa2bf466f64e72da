package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type memoryUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memoryUserRepository) FindDigestRecipients(_ context.Context) ([]*entity.User, error) {
	var result []*entity.User
	for _, user := range r.users {
		if user.WeeklyDigest {
			result = append(result, user)
		}
	}
	return result, nil
}

// plainPasswordService stores passwords with a visible prefix.
type plainPasswordService struct{}

func (plainPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type fakeTokenService struct {
	issued  int
	active  map[string]*adapter.TokenClaims
	revoked []uuid.UUID
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{active: make(map[string]*adapter.TokenClaims)}
}

func (f *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	f.issued++
	refresh := fmt.Sprintf("refresh-%d", f.issued)
	f.active[refresh] = &adapter.TokenClaims{UserID: userID, Email: email}
	return &adapter.TokenPair{AccessToken: fmt.Sprintf("access-%d", f.issued), RefreshToken: refresh}, nil
}

func (f *fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not used")
}

func (f *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, ok := f.active[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return claims, nil
}

func (f *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	delete(f.active, token)
	return nil
}

func (f *fakeTokenService) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	f.revoked = append(f.revoked, userID)
	for token, claims := range f.active {
		if claims.UserID == userID {
			delete(f.active, token)
		}
	}
	return nil
}

type countingExpenseRepository struct {
	adapter.ExpenseRepository
	deletedFor []uuid.UUID
}

func (r *countingExpenseRepository) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.deletedFor = append(r.deletedFor, userID)
	return nil
}

type countingCategoryRepository struct {
	adapter.CategoryRepository
	deletedFor []uuid.UUID
}

func (r *countingCategoryRepository) DeleteAllByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.deletedFor = append(r.deletedFor, ownerID)
	return nil
}
