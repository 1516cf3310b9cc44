package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"members-api.backend/internal/domain/entities"
	domainerrors "members-api.backend/internal/domain/errors"
	"members-api.backend/internal/interfaces/http/response"
	"members-api.backend/internal/usecases"
	"members-api.backend/pkg/utils"
)

const msgMembersDeleted = "Members deleted successfully"

type MemberHandler struct {
	usecase *usecases.MemberUsecase
}

func NewMemberHandler(usecase *usecases.MemberUsecase) *MemberHandler {
	return &MemberHandler{usecase: usecase}
}

// ListMembers returns one page of members.
// GET /members?page=&limit=&search=&sortColumn=&sortOrder=
func (h *MemberHandler) ListMembers(c *gin.Context) {
	pagination := utils.ParsePaginationParams(c.Query("page"), c.Query("limit"))

	page, err := h.usecase.List(c.Request.Context(), entities.MemberListParams{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		Search:     c.Query("search"),
		SortColumn: c.Query("sortColumn"),
		SortOrder:  entities.SortOrder(c.Query("sortOrder")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetMember returns a single member.
// GET /members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// CreateMember creates a member.
// POST /members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var input entities.MemberInput
	if err := bindMemberInput(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	member, err := h.usecase.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, member)
}

// UpdateMember replaces a member's fields.
// PUT /members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var input entities.MemberInput
	if err := bindMemberInput(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	member, err := h.usecase.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// bindMemberInput decodes the request body. An empty body binds as an
// input with no fields set, leaving the field checks to the usecase.
func bindMemberInput(c *gin.Context, input *entities.MemberInput) error {
	if err := c.ShouldBindJSON(input); err != nil && !errors.Is(err, io.EOF) {
		return domainerrors.BadRequest(err.Error())
	}
	return nil
}

// DeleteMembers removes every member whose id is listed.
// POST /members/delete
func (h *MemberHandler) DeleteMembers(c *gin.Context) {
	var input struct {
		IDs []interface{} `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	// only strings can be member ids; anything else cannot match a row
	ids := lo.FilterMap(input.IDs, func(v interface{}, _ int) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})

	if err := h.usecase.DeleteMany(c.Request.Context(), ids); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, msgMembersDeleted)
}
