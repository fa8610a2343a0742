package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(
		&u.UUID,
		&u.Email,
		&u.Name,
		&u.YandexID,

		&u.IsActive,
		&u.IsSuperuser,

		&u.AccessToken,
		&u.RefreshToken,
		&u.TokenExpires,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (r *Repository) FetchUsers(ctx context.Context, page int) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)
		if err = scanUser(rows, u); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	if err := scanUser(r.db.QueryRow(ctx, SelectUserByID, uuid), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

// ReconcileProviderLogin maps a provider identity onto the users table inside
// one transaction: an existing row (matched by yandex id or email, and locked)
// gets its provider credentials refreshed, otherwise a new row is inserted.
// A losing concurrent insert rolls back and reports ErrUserConflict.
func (r *Repository) ReconcileProviderLogin(ctx context.Context, req user.User) (*user.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u := new(User)
	err = scanUser(tx.QueryRow(ctx, SelectUserByYandexIDOrEmail, req.YandexID, req.Email), u)
	switch {
	case err == nil:
		name := req.Name
		if name == "" {
			name = u.Name
		}
		updated := new(User)
		if err = scanUser(tx.QueryRow(ctx, UpdateProviderLogin,
			req.YandexID, name, req.AccessToken, req.TokenExpires, u.UUID,
		), updated); err != nil {
			return nil, err
		}
		u = updated

	case errors.Is(err, pgx.ErrNoRows):
		if err = scanUser(tx.QueryRow(ctx, InsertUser,
			req.Email, req.Name, req.YandexID, req.AccessToken, req.RefreshToken, req.TokenExpires,
		), u); err != nil {
			if postgres.IsPgUniqueViolation(err) {
				return nil, ErrUserConflict
			}
			return nil, err
		}

	default:
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)
	if err := scanUser(r.db.QueryRow(ctx, UpdateUserByUUID,
		req.Email, req.Name, req.UUID,
	), u); err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrUserConflict
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteUser(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	if err := scanUser(r.db.QueryRow(ctx, DeleteUserByUUID, uuid), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
