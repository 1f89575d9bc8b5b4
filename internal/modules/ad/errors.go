package ad

import "errors"

var (
	ErrNotFound           = errors.New("ad not found")
	ErrForbidden          = errors.New("you can only modify your own ads")
	ErrInvalidCoordinates = errors.New("latitude must be in [-90, 90], longitude in [-180, 180]")
	ErrInvalidDealType    = errors.New("deal_type must be sale or rent")
	ErrInvalidRadius      = errors.New("radius_km must be greater than 0.1 and at most 50")
	ErrCategoryNotFound   = errors.New("category not found")
)
