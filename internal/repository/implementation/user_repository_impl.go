package implementation

import (
	"context"

	"airport-assistant-be/internal/entity"
	"airport-assistant-be/internal/mapper"
	"airport-assistant-be/internal/model"
	"airport-assistant-be/internal/repository/contract"
	"airport-assistant-be/pkg/kvstore"
)

type userRepository struct {
	store  *kvstore.FileStore[model.User]
	mapper *mapper.UserMapper
}

func NewUserRepository(store *kvstore.FileStore[model.User]) contract.UserRepository {
	return &userRepository{
		store:  store,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored, err := r.store.SetIfAbsent(user.Username, r.mapper.ToModel(user))
	if err != nil {
		return err
	}
	if !stored {
		return contract.ErrUserExists
	}
	return nil
}

// FindByUsername returns nil, nil when no such user exists.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, ok := r.store.Get(username)
	if !ok {
		return nil, nil
	}
	return r.mapper.ToEntity(username, &m), nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	replaced, err := r.store.Replace(user.Username, r.mapper.ToModel(user))
	if err != nil {
		return err
	}
	if !replaced {
		return contract.ErrUserNotFound
	}
	return nil
}
