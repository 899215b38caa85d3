package aggregate

import (
	"errors"
	"fmt"
)

// Pagination defaults. The page size default matches the dashboard's
// seven-row transaction table.
const (
	DefaultPage    = 1
	DefaultPerPage = 7
	MaxPerPage     = 100
)

// Page is a 1-based page number.
type Page int

// PerPage is the number of rows per page.
type PerPage int

// Pagination validation errors.
var (
	ErrPageNotPositive    = errors.New("page must be positive")
	ErrPerPageNotPositive = errors.New("per_page must be positive")
	ErrPerPageTooLarge    = errors.New("per_page exceeds maximum limit")
)

// ParsePage validates a page number; zero selects the default first page.
func ParsePage(page int) (Page, error) {
	if page == 0 {
		return DefaultPage, nil
	}
	if page < 0 {
		return 0, fmt.Errorf("%w: %d", ErrPageNotPositive, page)
	}
	return Page(page), nil
}

// ParsePerPage validates a page size; zero selects the default.
func ParsePerPage(perPage int) (PerPage, error) {
	if perPage == 0 {
		return DefaultPerPage, nil
	}
	if perPage < 0 {
		return 0, fmt.Errorf("%w: %d", ErrPerPageNotPositive, perPage)
	}
	if perPage > MaxPerPage {
		return 0, fmt.Errorf("%w: must be between 1 and %d", ErrPerPageTooLarge, MaxPerPage)
	}
	return PerPage(perPage), nil
}
