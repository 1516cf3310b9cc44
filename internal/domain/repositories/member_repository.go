package repositories

import (
	"context"

	"github.com/google/uuid"
	"members-api.backend/internal/domain/entities"
)

// MemberRepository is the datastore boundary for members. Implementations
// return domainerrors.ErrNotFound for missing rows and
// domainerrors.ErrAlreadyExists for unique-constraint violations.
type MemberRepository interface {
	List(ctx context.Context, params entities.MemberListParams) ([]*entities.Member, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Member, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.Member, error)
	Create(ctx context.Context, member *entities.Member) error
	Update(ctx context.Context, member *entities.Member) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}
