package store

import (
	"fmt"

	"github.com/agentdms/admin/errors"
	"gorm.io/gorm"
)

// translate maps gorm errors to domain errors, keeping the original in the chain.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, errors.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, errors.ErrInvalidRequest)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Page describes a 1-based page request.
type Page struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// Clamp moves a page past the end back to the last page. Empty results stay
// on page 1.
func (p Page) Clamp(total int64) Page {
	if total <= 0 || p.PageSize < 1 {
		return p
	}
	last := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	if p.Page > last {
		p.Page = last
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }
