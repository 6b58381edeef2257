package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/domain"
)

// UserMirrorRepository keeps a local copy of upstream account records
// so the rest of the backend can join against them without a network
// call. Writes are driven by the canonical record fetched back after
// each successful mutation; the upstream stays the source of truth.
type UserMirrorRepository struct {
	db *sql.DB
}

func NewUserMirrorRepository(db *sql.DB) *UserMirrorRepository {
	return &UserMirrorRepository{db: db}
}

// Upsert writes the record into identity_users, keyed by uid.
func (r *UserMirrorRepository) Upsert(ctx context.Context, rec *domain.UserRecord) error {
	claims := rec.CustomClaims
	if claims == nil {
		claims = map[string]interface{}{}
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		claimsJSON = []byte("{}")
	}

	query := `
		INSERT INTO identity_users (id, uid, email, phone_number, display_name, photo_url, disabled, email_verified, custom_claims, updated_at)
		VALUES ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), nullif($6,''), $7, $8, $9, now())
		ON CONFLICT (uid) DO UPDATE SET
			email = excluded.email,
			phone_number = excluded.phone_number,
			display_name = excluded.display_name,
			photo_url = excluded.photo_url,
			disabled = excluded.disabled,
			email_verified = excluded.email_verified,
			custom_claims = excluded.custom_claims,
			updated_at = now()
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		rec.UID,
		rec.Email,
		rec.PhoneNumber,
		rec.DisplayName,
		rec.PhotoURL,
		rec.Disabled,
		rec.EmailVerified,
		claimsJSON,
	)
	return err
}

// GetByUID reads one mirrored record back.
func (r *UserMirrorRepository) GetByUID(ctx context.Context, uid string) (*domain.UserRecord, error) {
	query := `
		SELECT uid, email, phone_number, display_name, photo_url, disabled, email_verified, custom_claims
		FROM identity_users
		WHERE uid = $1
	`

	var rec domain.UserRecord
	var email, phone, displayName, photoURL sql.NullString
	var claimsJSON []byte

	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&rec.UID,
		&email,
		&phone,
		&displayName,
		&photoURL,
		&rec.Disabled,
		&rec.EmailVerified,
		&claimsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.Email = email.String
	rec.PhoneNumber = phone.String
	rec.DisplayName = displayName.String
	rec.PhotoURL = photoURL.String

	if len(claimsJSON) > 0 {
		var claims map[string]interface{}
		if err := json.Unmarshal(claimsJSON, &claims); err == nil && len(claims) > 0 {
			rec.CustomClaims = claims
		}
	}

	return &rec, nil
}

// Delete removes the mirrored row. Deleting a uid that was never
// mirrored is not an error.
func (r *UserMirrorRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM identity_users WHERE uid = $1`, uid)
	return err
}
