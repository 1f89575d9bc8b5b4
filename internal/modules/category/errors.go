package category

import "errors"

var (
	ErrNotFound       = errors.New("category not found")
	ErrParentNotFound = errors.New("parent category not found")
	ErrSelfParent     = errors.New("category cannot be its own parent")
	ErrHasChildren    = errors.New("category has child categories")
	ErrHasAds         = errors.New("category is used by existing ads")
	ErrNoNames        = errors.New("at least one localized name is required")
)
