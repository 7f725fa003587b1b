package usecase

import (
	"context"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile returns the user's account data.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile modifies the user's own profile fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// ListAuthMethods returns the providers linked to the account.
	ListAuthMethods(ctx context.Context, userID uuid.UUID) ([]*entity.Authentication, error)
}

// UpdateProfileInput defines the data required to update a profile. Nil
// pointers leave the field unchanged.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Picture   *string `json:"picture,omitempty"`
}
