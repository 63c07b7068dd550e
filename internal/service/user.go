package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"charsheet/backend/internal/models"
	"charsheet/backend/internal/store"
	"charsheet/backend/pkg/token"
)

const verificationTokenBytes = 32

// UserService owns account lifecycle: registration, profile updates and the
// cascading delete of everything a user owns.
type UserService struct {
	users      store.UserStore
	characters store.CharacterStore
	items      store.ItemStore
}

func NewUserService(users store.UserStore, characters store.CharacterStore, items store.ItemStore) *UserService {
	return &UserService{users: users, characters: characters, items: items}
}

// CreateUserInput carries the registration fields.
type CreateUserInput struct {
	Name      string
	BirthDate time.Time
	Email     string
	Password  string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name      *string
	BirthDate *time.Time
	Email     *string
	Password  *string
}

// CreateUser registers a new account. The password is bcrypt-hashed before
// it ever reaches the store, and a verification token is generated for the
// (external) email verification flow.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Name == "" {
		return nil, &models.MissingFieldError{Field: "name"}
	}
	if input.BirthDate.IsZero() {
		return nil, &models.MissingFieldError{Field: "birthDate"}
	}
	if input.Email == "" {
		return nil, &models.MissingFieldError{Field: "email"}
	}
	if input.Password == "" {
		return nil, &models.MissingFieldError{Field: "password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	verificationToken, err := token.Generate(verificationTokenBytes)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:              input.Name,
		BirthDate:         input.BirthDate,
		Email:             input.Email,
		Password:          string(hash),
		VerificationToken: verificationToken,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, &models.DuplicateKeyError{Field: "email"}
		}
		return nil, err
	}

	zap.L().Info("user created", zap.Uint("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser merges the provided fields into the stored record. A changed
// password is rehashed; the old hash is never reused.
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, &models.MissingFieldError{Field: "name"}
		}
		user.Name = *input.Name
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, &models.MissingFieldError{Field: "email"}
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, &models.MissingFieldError{Field: "password"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, &models.DuplicateKeyError{Field: "email"}
		}
		return nil, err
	}

	zap.L().Info("user updated", zap.Uint("userID", user.ID))
	return user, nil
}

// DeleteUser removes the account and cascades: every owned character is
// deleted first, each taking its items with it.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	charIDs, err := s.characters.ListIDsByUser(ctx, id)
	if err != nil {
		return err
	}
	for _, charID := range charIDs {
		if err := s.items.DeleteByCharacter(ctx, charID); err != nil {
			return err
		}
		if err := s.characters.Delete(ctx, charID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	if len(charIDs) > 0 {
		zap.L().Info("user characters deleted", zap.Uint("userID", id), zap.Int("count", len(charIDs)))
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	zap.L().Info("user deleted", zap.Uint("userID", id))
	return nil
}
