package repository

import (
	"errors"

	"github.com/alexanderramin/basekit/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateVersion is returned when a parameter already has a version
	// starting on the same effective date.
	ErrDuplicateVersion = errors.New(domain.DuplicateVersionMessage)

	// ErrDuplicateParameter is returned when a parameter code is already used
	// within the same country/company scope.
	ErrDuplicateParameter = errors.New("a parameter with this code already exists for this country and company")

	ErrDuplicate = errors.New("already exists")
)
