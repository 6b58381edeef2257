package domain

// Query selects exactly one account for lookup. Exactly one selector
// field must be populated; anything else is a caller error reported
// before any network call.
type Query struct {
	UID         string
	Email       string
	PhoneNumber string
}

// Selector returns the wire field name and value of the populated
// selector.
func (q Query) Selector() (field, value string, err error) {
	set := 0
	if q.UID != "" {
		field, value = "localId", q.UID
		set++
	}
	if q.Email != "" {
		field, value = "email", q.Email
		set++
	}
	if q.PhoneNumber != "" {
		field, value = "phoneNumber", q.PhoneNumber
		set++
	}

	switch {
	case set == 0:
		return "", "", &InvalidArgumentError{Field: "query", Reason: "one of uid, email or phone_number is required"}
	case set > 1:
		return "", "", &InvalidArgumentError{Field: "query", Reason: "only one of uid, email or phone_number may be set"}
	}
	return field, value, nil
}
