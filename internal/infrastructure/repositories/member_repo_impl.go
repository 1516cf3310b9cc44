package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"members-api.backend/internal/domain/entities"
	domainerrors "members-api.backend/internal/domain/errors"
	"members-api.backend/internal/infrastructure/models"
	"members-api.backend/pkg/utils"
)

const pgUniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns one page of members and the number of rows matching the
// search before pagination.
func (r *MemberRepository) List(ctx context.Context, params entities.MemberListParams) ([]*entities.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Member{})

	if term := params.Search; term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(role) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// an offset at or past the match count can only yield an empty page
	if params.Limit > 0 && int64(params.Offset()) >= total {
		return []*entities.Member{}, total, nil
	}

	column := params.SortColumn
	if !lo.Contains(entities.MemberSortColumns, column) {
		column = entities.DefaultMemberSortColumn
	}
	query = query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: params.SortOrder == entities.SortDesc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	if params.Limit > 0 {
		query = query.Limit(params.Limit).Offset(params.Offset())
	}

	var ms []models.Member
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := lo.Map(ms, func(m models.Member, _ int) *entities.Member {
		return r.toEntity(&m)
	})
	return items, total, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	var m models.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// FindByUsernameOrEmail returns the oldest member holding either value.
func (r *MemberRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entities.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *MemberRepository) Create(ctx context.Context, member *entities.Member) error {
	if member.ID == uuid.Nil {
		member.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

// Update overwrites every writable column of the row identified by
// member.ID.
func (r *MemberRepository) Update(ctx context.Context, member *entities.Member) error {
	now := time.Now()
	updates := map[string]interface{}{
		"name":       member.Name,
		"username":   member.Username,
		"email":      member.Email,
		"avatar":     member.Avatar,
		"is_active":  member.IsActive,
		"role":       member.Role,
		"teams":      pq.StringArray(member.Teams),
		"updated_at": now,
	}

	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", member.ID).
		Updates(updates)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

// DeleteByIDs physically removes every listed member and reports how many
// rows went away. Unknown ids are ignored.
func (r *MemberRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Member{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrAlreadyExists
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

func (r *MemberRepository) toEntity(m *models.Member) *entities.Member {
	teams := make([]string, len(m.Teams))
	copy(teams, m.Teams)
	return &entities.Member{
		ID:        m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Email:     m.Email,
		Avatar:    m.Avatar,
		IsActive:  m.IsActive,
		Role:      m.Role,
		Teams:     teams,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *MemberRepository) toModel(e *entities.Member) *models.Member {
	return &models.Member{
		ID:        e.ID,
		Name:      e.Name,
		Username:  e.Username,
		Email:     e.Email,
		Avatar:    e.Avatar,
		IsActive:  e.IsActive,
		Role:      e.Role,
		Teams:     pq.StringArray(e.Teams),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
