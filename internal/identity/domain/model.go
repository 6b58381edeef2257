package domain

import "encoding/json"

// ProviderUserInfo is one federated identity attached to an account.
type ProviderUserInfo struct {
	ProviderID  string `json:"provider_id,omitempty"`
	FederatedID string `json:"federated_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// UserRecord is a read-only view of one account as the upstream API
// reports it. It is only ever built from a raw lookup entry via
// NewUserRecord and never mutated afterwards.
type UserRecord struct {
	UID           string                 `json:"uid"`
	Email         string                 `json:"email,omitempty"`
	PhoneNumber   string                 `json:"phone_number,omitempty"`
	DisplayName   string                 `json:"display_name,omitempty"`
	PhotoURL      string                 `json:"photo_url,omitempty"`
	Disabled      bool                   `json:"disabled"`
	EmailVerified bool                   `json:"email_verified"`
	CustomClaims  map[string]interface{} `json:"custom_claims,omitempty"`
	ProviderData  []*ProviderUserInfo    `json:"provider_data,omitempty"`
}

// NewUserRecord maps a raw accounts:lookup entry onto a UserRecord.
// Custom claims arrive embedded as a JSON string under
// customAttributes; a missing or unparseable value leaves the claims
// absent.
func NewUserRecord(data map[string]interface{}) *UserRecord {
	rec := &UserRecord{
		UID:           stringVal(data["localId"]),
		Email:         stringVal(data["email"]),
		PhoneNumber:   stringVal(data["phoneNumber"]),
		DisplayName:   stringVal(data["displayName"]),
		PhotoURL:      stringVal(data["photoUrl"]),
		Disabled:      boolVal(data["disabled"]),
		EmailVerified: boolVal(data["emailVerified"]),
	}

	if raw := stringVal(data["customAttributes"]); raw != "" {
		var claims map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &claims); err == nil {
			rec.CustomClaims = claims
		}
	}

	if providers, ok := data["providerUserInfo"].([]interface{}); ok {
		for _, p := range providers {
			entry, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			rec.ProviderData = append(rec.ProviderData, &ProviderUserInfo{
				ProviderID:  stringVal(entry["providerId"]),
				FederatedID: stringVal(entry["federatedId"]),
				DisplayName: stringVal(entry["displayName"]),
				Email:       stringVal(entry["email"]),
				PhotoURL:    stringVal(entry["photoUrl"]),
				PhoneNumber: stringVal(entry["phoneNumber"]),
			})
		}
	}

	return rec
}

// CreateParams carries the optional fields for account creation.
// A nil pointer means the field was not supplied and is omitted from
// the outgoing payload entirely; an explicit zero value is sent as-is.
type CreateParams struct {
	UID           *string
	DisplayName   *string
	Email         *string
	EmailVerified *bool
	PhoneNumber   *string
	PhotoURL      *string
	Password      *string
	Disabled      *bool
}

// UpdateParams mirrors CreateParams minus the caller-chosen uid, which
// update operations take separately as the required key.
type UpdateParams struct {
	DisplayName   *string
	Email         *string
	EmailVerified *bool
	PhoneNumber   *string
	PhotoURL      *string
	Password      *string
	Disabled      *bool
}

func stringVal(v interface{}) string {
	s, _ := v.(string)
	return s
}

func boolVal(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
