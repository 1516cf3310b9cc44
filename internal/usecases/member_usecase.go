package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"members-api.backend/internal/domain/entities"
	domainerrors "members-api.backend/internal/domain/errors"
	"members-api.backend/internal/domain/repositories"
	"members-api.backend/pkg/logger"
	"members-api.backend/pkg/utils"
)

// MemberUsecase handles member business logic
type MemberUsecase struct {
	memberRepo repositories.MemberRepository
	validate   *validator.Validate
}

// NewMemberUsecase creates a new member usecase
func NewMemberUsecase(memberRepo repositories.MemberRepository) *MemberUsecase {
	return &MemberUsecase{
		memberRepo: memberRepo,
		validate:   newMemberValidator(),
	}
}

// List returns one page of members matching params.Search together with
// the size of the whole matching set.
func (u *MemberUsecase) List(ctx context.Context, params entities.MemberListParams) (*entities.MemberPage, error) {
	pagination := utils.GetPaginationParams(params.Page, params.Limit)
	params.Page, params.Limit = pagination.Page, pagination.Limit

	params.SortColumn = strings.TrimSpace(params.SortColumn)
	if params.SortColumn == "" {
		params.SortColumn = entities.DefaultMemberSortColumn
	}
	if !lo.Contains(entities.MemberSortColumns, params.SortColumn) {
		return nil, domainerrors.BadRequest(MsgInvalidSortColumn)
	}

	switch entities.SortOrder(strings.ToLower(strings.TrimSpace(string(params.SortOrder)))) {
	case "", entities.SortAsc:
		params.SortOrder = entities.SortAsc
	case entities.SortDesc:
		params.SortOrder = entities.SortDesc
	default:
		return nil, domainerrors.BadRequest(MsgInvalidSortOrder)
	}

	items, total, err := u.memberRepo.List(ctx, params)
	if err != nil {
		logger.Error(ctx, "Failed to list members", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	if items == nil {
		items = []*entities.Member{}
	}
	return &entities.MemberPage{Items: items, Total: total}, nil
}

// Get looks up one member. Identifiers that are not UUIDs cannot name a
// stored member and are reported as not found.
func (u *MemberUsecase) Get(ctx context.Context, rawID string) (*entities.Member, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, domainerrors.NotFound(MsgMemberNotFound)
	}

	member, err := u.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(MsgMemberNotFound)
		}
		logger.Error(ctx, "Failed to fetch member", zap.String("id", id.String()), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return member, nil
}

// Create validates input, rejects duplicates and stores a new member.
func (u *MemberUsecase) Create(ctx context.Context, input entities.MemberInput) (*entities.Member, error) {
	input = normalizeMemberInput(input)

	avatar := input.Avatar
	if avatar == "" {
		avatar = utils.DefaultAvatarURL(input.Username)
	}

	if err := u.validate.Struct(input); err != nil {
		return nil, domainerrors.BadRequest(validationMessage(err))
	}

	existing, err := u.memberRepo.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		logger.Error(ctx, "Error checking existing member", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	if existing != nil {
		return nil, domainerrors.Conflict(MsgMemberExists)
	}

	member := &entities.Member{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Avatar:   avatar,
		IsActive: input.IsActive,
		Role:     input.Role,
		Teams:    input.Teams,
	}
	if err := u.memberRepo.Create(ctx, member); err != nil {
		// the existence check above races with concurrent creates; the unique
		// constraints are authoritative
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(MsgMemberExists)
		}
		logger.Error(ctx, "Error inserting new member", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Member created", zap.String("id", member.ID.String()), zap.String("username", member.Username))
	return member, nil
}

// Update replaces every writable field of an existing member.
func (u *MemberUsecase) Update(ctx context.Context, rawID string, input entities.MemberInput) (*entities.Member, error) {
	input = normalizeMemberInput(input)

	if err := u.validate.Var(input.Email, memberEmailTag); err != nil {
		return nil, domainerrors.BadRequest(MsgInvalidEmail)
	}

	existing, err := u.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	avatar := input.Avatar
	if avatar == "" {
		avatar = utils.DefaultAvatarURL(input.Username)
	}
	teams := input.Teams
	if teams == nil {
		teams = []string{}
	}

	updated := *existing
	updated.Name = input.Name
	updated.Username = input.Username
	updated.Email = input.Email
	updated.Avatar = avatar
	updated.IsActive = input.IsActive
	updated.Role = input.Role
	updated.Teams = teams

	if err := u.memberRepo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound(MsgMemberNotFound)
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			return nil, domainerrors.Conflict(MsgMemberExists)
		}
		logger.Error(ctx, "Error updating member", zap.String("id", existing.ID.String()), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return &updated, nil
}

// DeleteMany removes every member named in rawIDs in one statement.
// Unknown or malformed identifiers are ignored.
func (u *MemberUsecase) DeleteMany(ctx context.Context, rawIDs []string) error {
	ids := utils.ParseUUIDs(rawIDs)
	deleted, err := u.memberRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		logger.Error(ctx, "Error deleting members", zap.Int("requested", len(rawIDs)), zap.Error(err))
		return domainerrors.InternalError(err)
	}
	logger.Info(ctx, "Members deleted", zap.Int("requested", len(rawIDs)), zap.Int64("deleted", deleted))
	return nil
}

func normalizeMemberInput(in entities.MemberInput) entities.MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Avatar = strings.TrimSpace(in.Avatar)
	in.Role = strings.TrimSpace(in.Role)
	in.Email = strings.TrimSpace(in.Email)
	if in.Teams != nil {
		in.Teams = lo.Map(in.Teams, func(team string, _ int) string {
			return strings.TrimSpace(team)
		})
	}
	return in
}
