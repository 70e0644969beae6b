package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noteboard/internal/notes/domain/entities"
	"noteboard/internal/notes/ports/repositories"
	"noteboard/pkg/logger"
)

// UserRepository реализует интерфейс repositories.UserRepository.
// Сервис заметок не владеет жизненным циклом пользователей и читает их
// только для обогащения ответов.
type UserRepository struct {
	db DB
}

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

// GetByID получает пользователя по ID. Возвращает nil, nil если пользователь не найден.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.GetByID"))
	log.Debug(ctx, "getting user", zap.String("userID", userID))

	var user entities.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username FROM users WHERE id = $1`, userID,
	).Scan(&user.ID, &user.Username)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("userID", userID))
			return nil, nil
		}
		log.Error(ctx, "failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
