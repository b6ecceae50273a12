package services

import (
	"context"
	"errors"

	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/store"
	"shareit/src/types"
)

type UserService struct {
	store store.Store
	cache *lib.UserCache
}

func NewUserService(st store.Store, cache *lib.UserCache) *UserService {
	return &UserService{store: st, cache: cache}
}

func (s *UserService) List(ctx context.Context) ([]types.APIResponseUser, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]types.APIResponseUser, 0, len(users))
	for i := range users {
		res = append(res, users[i].ToResponse())
	}
	return res, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (types.APIResponseUser, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return *cached, nil
	}
	user, err := requireUser(ctx, s.store, id)
	if err != nil {
		return types.APIResponseUser{}, err
	}
	res := user.ToResponse()
	s.cache.Set(ctx, res)
	return res, nil
}

func (s *UserService) Create(ctx context.Context, body types.CreateUserRequestBody) (types.APIResponseUser, error) {
	if isBlank(body.Name) {
		return types.APIResponseUser{}, types.NewValidationError("Name must not be blank")
	}
	if isBlank(body.Email) {
		return types.APIResponseUser{}, types.NewValidationError("Email must not be blank")
	}
	user := models.User{Name: body.Name, Email: body.Email}
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := ensureEmailFree(ctx, tx, body.Email, 0); err != nil {
			return err
		}
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		return types.APIResponseUser{}, duplicateEmail(err, body.Email)
	}
	return user.ToResponse(), nil
}

// Update applies the non-blank fields of body. Keeping one's own email is not a conflict.
func (s *UserService) Update(ctx context.Context, id uint, body types.UpdateUserRequestBody) (types.APIResponseUser, error) {
	var updated models.User
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		user, err := requireUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if body.Name != nil && !isBlank(*body.Name) {
			user.Name = *body.Name
		}
		if body.Email != nil && !isBlank(*body.Email) && *body.Email != user.Email {
			if err := ensureEmailFree(ctx, tx, *body.Email, id); err != nil {
				return err
			}
			user.Email = *body.Email
		}
		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		updated = *user
		return nil
	})
	if err != nil {
		if body.Email != nil {
			return types.APIResponseUser{}, duplicateEmail(err, *body.Email)
		}
		return types.APIResponseUser{}, err
	}
	s.cache.Invalidate(ctx, id)
	return updated.ToResponse(), nil
}

// Delete removes the user together with their items, bookings, comments and requests.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return notFound(err, "User with id=%d not found", id)
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func ensureEmailFree(ctx context.Context, st store.Store, email string, userID uint) error {
	other, err := st.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != userID {
		return types.NewDuplicatedDataError("Email %s is already in use", email)
	}
	return nil
}

// duplicateEmail covers the race where the unique index rejects the write.
func duplicateEmail(err error, email string) error {
	if errors.Is(err, store.ErrDuplicateKey) {
		return types.NewDuplicatedDataError("Email %s is already in use", email)
	}
	return err
}
