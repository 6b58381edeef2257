package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/validation"
)

// DefaultSessionCookieDuration is the upstream default validity for
// minted session cookies (5 days).
const DefaultSessionCookieDuration = 432000 * time.Second

// AccountService implements the account-management surface of the
// identity API on top of an injected Transport.
//
// Every mutating call that succeeds re-fetches the canonical record
// via lookup instead of trusting the mutation response: the upstream
// create/update responses are not guaranteed to carry the full record,
// and the extra round trip returns server-side state and defaulting.
//
// The service holds no mutable state; concurrent calls are safe as
// long as the transport is.
type AccountService struct {
	projectID string
	transport Transport
}

// NewAccountService creates the facade for one project.
func NewAccountService(projectID string, transport Transport) *AccountService {
	return &AccountService{
		projectID: projectID,
		transport: transport,
	}
}

// CreateUser validates the supplied fields, creates the account and
// returns the record fetched back from the upstream. Two network
// round-trips; callers must not assume atomicity beyond what the
// upstream guarantees.
func (s *AccountService) CreateUser(ctx context.Context, params domain.CreateParams) (*domain.UserRecord, error) {
	recordAccountOp()

	payload := map[string]interface{}{}
	if params.UID != nil {
		if err := validation.UID(*params.UID, true); err != nil {
			return nil, err
		}
		payload["localId"] = *params.UID
	}
	if err := addAccountFields(payload, accountFields{
		DisplayName:   params.DisplayName,
		Email:         params.Email,
		EmailVerified: params.EmailVerified,
		PhoneNumber:   params.PhoneNumber,
		PhotoURL:      params.PhotoURL,
		Password:      params.Password,
		Disabled:      params.Disabled,
	}); err != nil {
		return nil, err
	}

	resp, err := s.transport.Post(ctx, "accounts", payload)
	if err != nil {
		return nil, err
	}
	uid, ok := resp["localId"].(string)
	if !ok || uid == "" {
		return nil, &domain.CreateUserError{Response: resp}
	}
	return s.GetUserBy(ctx, domain.Query{UID: uid})
}

// GetUserBy resolves exactly one selector to a record. A query that
// matches no account returns (nil, nil); not-found is a normal result,
// not an error.
func (s *AccountService) GetUserBy(ctx context.Context, q domain.Query) (*domain.UserRecord, error) {
	recordAccountOp()

	field, value, err := q.Selector()
	if err != nil {
		return nil, err
	}
	switch field {
	case "localId":
		err = validation.UID(value, true)
	case "email":
		err = validation.Email(value, true)
	case "phoneNumber":
		err = validation.PhoneNumber(value, true)
	}
	if err != nil {
		return nil, err
	}

	// The lookup endpoint takes batched keys; we always send one.
	resp, err := s.transport.Post(ctx, "accounts:lookup", map[string]interface{}{
		field: []string{value},
	})
	if err != nil {
		return nil, err
	}
	users, ok := resp["users"].([]interface{})
	if !ok || len(users) == 0 {
		return nil, nil
	}
	entry, ok := users[0].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return domain.NewUserRecord(entry), nil
}

// UpdateUser validates uid plus the supplied fields, applies the
// update and returns the re-fetched record.
func (s *AccountService) UpdateUser(ctx context.Context, uid string, params domain.UpdateParams) (*domain.UserRecord, error) {
	recordAccountOp()

	if err := validation.UID(uid, true); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"localId": uid}
	if err := addAccountFields(payload, accountFields{
		DisplayName:   params.DisplayName,
		Email:         params.Email,
		EmailVerified: params.EmailVerified,
		PhoneNumber:   params.PhoneNumber,
		PhotoURL:      params.PhotoURL,
		Password:      params.Password,
		Disabled:      params.Disabled,
	}); err != nil {
		return nil, err
	}

	resp, err := s.transport.Post(ctx, "accounts:update", payload)
	if err != nil {
		return nil, err
	}
	if got, ok := resp["localId"].(string); !ok || got == "" {
		return nil, &domain.UpdateUserError{Response: resp}
	}
	return s.GetUserBy(ctx, domain.Query{UID: uid})
}

// DeleteUser removes the account. Success is defined purely by the
// transport not failing; the response body carries nothing we need.
func (s *AccountService) DeleteUser(ctx context.Context, uid string) error {
	recordAccountOp()

	if err := validation.UID(uid, true); err != nil {
		return err
	}
	_, err := s.transport.Post(ctx, "accounts:delete", map[string]interface{}{
		"localId": uid,
	})
	return err
}

// SetCustomUserClaims replaces the custom claims attached to an
// account and returns the re-fetched record. A nil claims map sends an
// explicit null, which asks the upstream to drop all custom claims;
// omitting the key would leave them untouched.
func (s *AccountService) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) (*domain.UserRecord, error) {
	recordAccountOp()

	if err := validation.UID(uid, true); err != nil {
		return nil, err
	}
	payload := map[string]interface{}{"localId": uid}
	if claims == nil {
		payload["customAttributes"] = nil
	} else {
		encoded, err := json.Marshal(claims)
		if err != nil {
			return nil, fmt.Errorf("encode custom claims: %w", err)
		}
		payload["customAttributes"] = string(encoded)
	}

	resp, err := s.transport.Post(ctx, "accounts:update", payload)
	if err != nil {
		return nil, err
	}
	if got, ok := resp["localId"].(string); !ok || got != uid {
		return nil, &domain.SetCustomUserClaimsError{Response: resp}
	}
	return s.GetUserBy(ctx, domain.Query{UID: uid})
}

// CreateSessionCookie mints a session cookie from a short-lived ID
// token. The response body is returned unmodified; the cookie payload
// has no further client-side structure. A non-positive duration falls
// back to the upstream default of 5 days.
func (s *AccountService) CreateSessionCookie(ctx context.Context, idToken string, validDuration time.Duration) (map[string]interface{}, error) {
	recordAccountOp()

	if idToken == "" {
		return nil, &domain.InvalidArgumentError{Field: "id_token", Reason: "id token is required"}
	}
	if validDuration <= 0 {
		validDuration = DefaultSessionCookieDuration
	}
	return s.transport.Post(ctx, ":createSessionCookie", map[string]interface{}{
		"idToken":       idToken,
		"validDuration": int64(validDuration.Seconds()),
	})
}

// accountFields are the optional wire fields shared by create and
// update payloads.
type accountFields struct {
	DisplayName   *string
	Email         *string
	EmailVerified *bool
	PhoneNumber   *string
	PhotoURL      *string
	Password      *string
	Disabled      *bool
}

// addAccountFields validates each supplied field and writes it into
// the payload under its wire name. Absent fields are omitted entirely;
// null is never sent for an unset field.
func addAccountFields(payload map[string]interface{}, f accountFields) error {
	if f.DisplayName != nil {
		if err := validation.DisplayName(*f.DisplayName); err != nil {
			return err
		}
		payload["displayName"] = *f.DisplayName
	}
	if f.Email != nil {
		if err := validation.Email(*f.Email, true); err != nil {
			return err
		}
		payload["email"] = *f.Email
	}
	if f.PhoneNumber != nil {
		if err := validation.PhoneNumber(*f.PhoneNumber, true); err != nil {
			return err
		}
		payload["phoneNumber"] = *f.PhoneNumber
	}
	if f.PhotoURL != nil {
		if err := validation.PhotoURL(*f.PhotoURL); err != nil {
			return err
		}
		payload["photoUrl"] = *f.PhotoURL
	}
	if f.Password != nil {
		if err := validation.Password(*f.Password); err != nil {
			return err
		}
		payload["password"] = *f.Password
	}
	if f.EmailVerified != nil {
		payload["emailVerified"] = *f.EmailVerified
	}
	if f.Disabled != nil {
		payload["disabled"] = *f.Disabled
	}
	return nil
}
