package authclient

import (
	goerrors "github.com/goliatone/go-errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// Profile is the identity service's view of the authenticated account.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// ProfilePatch is a partial profile update. Empty fields are left untouched
// server side.
type ProfilePatch struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate runs validation rules. Rules only apply to fields that are set.
func (p ProfilePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Length(1, 150)),
		validation.Field(&p.Email, is.Email),
		validation.Field(&p.Phone, validation.By(validPhone)),
	)
}

// Normalize returns a copy with the phone number in E.164 form.
func (p ProfilePatch) Normalize() (ProfilePatch, error) {
	if p.Phone == "" {
		return p, nil
	}

	num, err := phonenumbers.Parse(p.Phone, "US")
	if err != nil {
		return p, goerrors.Wrap(err, goerrors.CategoryValidation, "unable to parse phone number")
	}

	p.Phone = phonenumbers.Format(num, phonenumbers.E164)
	return p, nil
}

func (p ProfilePatch) payload() map[string]string {
	out := map[string]string{}
	if p.Username != "" {
		out["username"] = p.Username
	}
	if p.Email != "" {
		out["email"] = p.Email
	}
	if p.Phone != "" {
		out["phone"] = p.Phone
	}
	return out
}

func validPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return err
	}

	if !phonenumbers.IsValidNumber(num) {
		return goerrors.New("invalid phone number", goerrors.CategoryValidation)
	}

	return nil
}
