package http

import (
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/repository"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/service"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/validation"
)

// Handler exposes the account operations over REST.
type Handler struct {
	accounts *service.AccountService
	mirror   *repository.UserMirrorRepository
}

func New(accounts *service.AccountService, mirror *repository.UserMirrorRepository) *Handler {
	return &Handler{
		accounts: accounts,
		mirror:   mirror,
	}
}

// createAccountRequest carries the optional account fields. The
// boolean flags are deliberately loose so that callers sending "true"
// or 1 get normalized by the validator instead of a bind failure.
type createAccountRequest struct {
	UID           *string     `json:"uid,omitempty"`
	DisplayName   *string     `json:"display_name,omitempty"`
	Email         *string     `json:"email,omitempty"`
	EmailVerified interface{} `json:"email_verified,omitempty"`
	PhoneNumber   *string     `json:"phone_number,omitempty"`
	PhotoURL      *string     `json:"photo_url,omitempty"`
	Password      *string     `json:"password,omitempty"`
	Disabled      interface{} `json:"disabled,omitempty"`
}

func (r createAccountRequest) toParams() (domain.CreateParams, error) {
	emailVerified, err := validation.Bool("email_verified", r.EmailVerified)
	if err != nil {
		return domain.CreateParams{}, err
	}
	disabled, err := validation.Bool("disabled", r.Disabled)
	if err != nil {
		return domain.CreateParams{}, err
	}
	return domain.CreateParams{
		UID:           r.UID,
		DisplayName:   r.DisplayName,
		Email:         r.Email,
		EmailVerified: emailVerified,
		PhoneNumber:   r.PhoneNumber,
		PhotoURL:      r.PhotoURL,
		Password:      r.Password,
		Disabled:      disabled,
	}, nil
}

type updateAccountRequest struct {
	DisplayName   *string     `json:"display_name,omitempty"`
	Email         *string     `json:"email,omitempty"`
	EmailVerified interface{} `json:"email_verified,omitempty"`
	PhoneNumber   *string     `json:"phone_number,omitempty"`
	PhotoURL      *string     `json:"photo_url,omitempty"`
	Password      *string     `json:"password,omitempty"`
	Disabled      interface{} `json:"disabled,omitempty"`
}

func (r updateAccountRequest) toParams() (domain.UpdateParams, error) {
	emailVerified, err := validation.Bool("email_verified", r.EmailVerified)
	if err != nil {
		return domain.UpdateParams{}, err
	}
	disabled, err := validation.Bool("disabled", r.Disabled)
	if err != nil {
		return domain.UpdateParams{}, err
	}
	return domain.UpdateParams{
		DisplayName:   r.DisplayName,
		Email:         r.Email,
		EmailVerified: emailVerified,
		PhoneNumber:   r.PhoneNumber,
		PhotoURL:      r.PhotoURL,
		Password:      r.Password,
		Disabled:      disabled,
	}, nil
}

// setClaimsRequest replaces an account's custom claims. A null or
// omitted claims value requests removal of all custom claims.
type setClaimsRequest struct {
	Claims map[string]interface{} `json:"claims"`
}

type sessionCookieRequest struct {
	IDToken              string `json:"id_token" binding:"required"`
	ValidDurationSeconds int64  `json:"valid_duration_seconds,omitempty"`
}
