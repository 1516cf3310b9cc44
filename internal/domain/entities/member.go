package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"members-api.backend/pkg/utils"
)

// Member is a person tracked by the directory, with contact details, a
// role and the teams they belong to.
type Member struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	IsActive  null.Bool `json:"is_active"`
	Role      string    `json:"role"`
	Teams     []string  `json:"teams"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberInput is the writable field set accepted by create and update.
type MemberInput struct {
	Name     string    `json:"name" validate:"required"`
	Username string    `json:"username" validate:"required"`
	Avatar   string    `json:"avatar"`
	IsActive null.Bool `json:"is_active"`
	Role     string    `json:"role" validate:"required"`
	Email    string    `json:"email" validate:"required,member_email"`
	Teams    []string  `json:"teams" validate:"required,min=1,dive,required"`
}

// SortOrder is the direction of a list ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// MemberListParams describes one page of a filtered, sorted listing.
type MemberListParams struct {
	Page       int
	Limit      int
	Search     string
	SortColumn string
	SortOrder  SortOrder
}

// Offset is the zero-based index of the first row on the page. It
// saturates at math.MaxInt for pages too far out to address.
func (p MemberListParams) Offset() int {
	return utils.PageOffset(p.Page, p.Limit)
}

// MemberPage is a page of members plus the size of the whole matching set.
type MemberPage struct {
	Items []*Member `json:"items"`
	Total int64     `json:"total"`
}

// DefaultMemberSortColumn is used when a listing names no column.
const DefaultMemberSortColumn = "name"

// MemberSortColumns lists the columns a listing may be ordered by.
var MemberSortColumns = []string{"id", "name", "username", "email", "role", "is_active", "created_at", "updated_at"}
