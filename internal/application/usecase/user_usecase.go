package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD para usuarios (clientes de la tienda).
type UserUseCase struct {
	users        *cache.Collection[entity.User]
	remote       repository.UserRemote
	ids          *cache.LocalIDGenerator
	events       notifier
	writeThrough bool
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	users *cache.Collection[entity.User],
	remote repository.UserRemote,
	ids *cache.LocalIDGenerator,
	pub repository.ChangePublisher,
	writeThrough bool,
	log zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		remote:       remote,
		ids:          ids,
		events:       newNotifier(pub, log),
		writeThrough: writeThrough,
	}
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.users.Items(ctx)
	if err != nil {
		return nil, err
	}
	from, to := page.Bounds(len(list))
	items := make([]dto.UserResponse, 0, to-from)
	for _, u := range list[from:to] {
		items = append(items, toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(u)
	return &out, nil
}

// Create crea un usuario con id local.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	u := entity.User{
		ID:        uc.ids.Next(),
		Email:     strings.TrimSpace(in.Email),
		Username:  strings.TrimSpace(in.Username),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Origin:    entity.OriginLocal,
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if uc.writeThrough {
		if _, err := uc.remote.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("crear usuario en API: %w", err)
		}
	}
	if err := uc.users.Put(ctx, u); err != nil {
		return nil, err
	}
	uc.events.notify(ctx, repository.KeyUsers, entity.ActionCreated, u.ID, u.Origin)
	out := toUserResponse(u)
	return &out, nil
}

// Update actualiza los campos presentes del usuario. Las órdenes ya armadas conservan
// la copia anterior del usuario.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if uc.replicates(u) {
		if _, err := uc.remote.UpdateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("actualizar usuario %d en API: %w", id, err)
		}
	}
	if err := uc.users.Put(ctx, u); err != nil {
		return nil, err
	}
	uc.events.notify(ctx, repository.KeyUsers, entity.ActionUpdated, u.ID, u.Origin)
	out := toUserResponse(u)
	return &out, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	u, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if uc.replicates(u) {
		if err := uc.remote.DeleteUser(ctx, id); err != nil {
			return fmt.Errorf("eliminar usuario %d en API: %w", id, err)
		}
	}
	if err := uc.users.Remove(ctx, id); err != nil {
		return err
	}
	uc.events.notify(ctx, repository.KeyUsers, entity.ActionDeleted, id, u.Origin)
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id int64) (entity.User, error) {
	u, ok, err := uc.users.Find(ctx, id)
	if err != nil {
		return u, err
	}
	if !ok {
		return u, fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (uc *UserUseCase) replicates(u entity.User) bool {
	return uc.writeThrough && entity.ResolveOrigin(u.Origin, u.ID) == entity.OriginRemote
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Phone:     u.Phone,
		Origin:    string(entity.ResolveOrigin(u.Origin, u.ID)),
	}
}
