package handler

import (
	"context"

	"github.com/movierental/backend/internal/model"
)

// The handlers depend on narrow store interfaces rather than the
// concrete repository types. The repositories satisfy them as-is; tests
// substitute in-memory fakes.

// UserStore is the persistence contract behind the auth endpoints.
type UserStore interface {
	Create(ctx context.Context, username, password, role string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// MovieStore is the persistence contract behind the movie endpoints.
type MovieStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id uint64) (model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, id uint64, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
	AttachPoster(ctx context.Context, id uint64, path string) error
}

// ApplicationStore is the persistence contract behind the application
// endpoints.
type ApplicationStore interface {
	Create(ctx context.Context, a *model.Application) error
	List(ctx context.Context) ([]model.Application, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Application, error)
	ListByEmail(ctx context.Context, email string) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	AttachImage(ctx context.Context, id uint64, path string) error
}

// ChatStore is the persistence contract behind the chat endpoints.
type ChatStore interface {
	Create(ctx context.Context, userID uint64, message string) (uint64, error)
	Accept(ctx context.Context, chatID, adminID uint64) error
	AddMessage(ctx context.Context, chatID uint64, sender, message string) error
	GetByID(ctx context.Context, chatID uint64) (model.Chat, error)
	ListPending(ctx context.Context) ([]model.Chat, error)
	ListAcceptedByAdmin(ctx context.Context, adminID uint64) ([]model.Chat, error)
}
