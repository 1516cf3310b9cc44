package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// GetPaginationParams applies defaults to non-positive values.
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// ParsePaginationParams reads raw query values. Only the leading integer
// of each value counts ("2abc" is 2); values without one, or that are not
// positive, fall back to the defaults.
func ParsePaginationParams(rawPage, rawLimit string) PaginationParams {
	return GetPaginationParams(leadingInt(rawPage), leadingInt(rawLimit))
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	return PageOffset(p.Page, p.Limit)
}

// PageOffset returns (page-1)*limit, saturating at math.MaxInt instead of
// overflowing so a huge page still lies past the end of any result.
func PageOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// leadingInt parses the optionally signed run of digits at the start of s,
// ignoring leading whitespace. Out-of-range values clamp to the int range.
func leadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	// ParseInt returns the clamped bound alongside ErrRange
	return int(n)
}
