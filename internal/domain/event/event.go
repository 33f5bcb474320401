package event

// Type identifies an identity-provider lifecycle event. The set is closed;
// types outside it are tolerated at dispatch time but never handled.
type Type string

const (
	UserCreated Type = "user.created"
	UserUpdated Type = "user.updated"
	UserDeleted Type = "user.deleted"
)

// EmailAddress is one address attached to the provider's user object.
type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// UserData is the provider's user object as delivered in webhook payloads.
type UserData struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	ImageURL              string         `json:"image_url"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	Banned                bool           `json:"banned"`
	Locked                bool           `json:"locked"`
	CreatedAt             int64          `json:"created_at"`
	UpdatedAt             int64          `json:"updated_at"`
}

// PrimaryEmail returns the address whose id matches PrimaryEmailAddressID.
func (d UserData) PrimaryEmail() (string, bool) {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress, true
		}
	}
	return "", false
}

// Event is a verified identity-provider notification. Immutable once
// received; it lives only for the duration of one dispatch.
type Event struct {
	Type       Type     `json:"type"`
	Object     string   `json:"object"`
	InstanceID string   `json:"instance_id"`
	Timestamp  int64    `json:"timestamp"`
	Data       UserData `json:"data"`
}
