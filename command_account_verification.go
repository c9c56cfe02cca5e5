package authclient

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

type ActivateAccountMessage struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

func (e ActivateAccountMessage) Type() string { return "user.activation" }

// Validate will run validation rules. Activation links arrive mangled from
// email clients often enough that a missing segment must fail here, before
// any network call.
func (e ActivateAccountMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.UID, validation.Required),
		validation.Field(&e.Token, validation.Required),
	)
}

type ActivateAccountHandler struct {
	Client *Client
}

func (h *ActivateAccountHandler) Execute(ctx context.Context, event ActivateAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account activation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ActivateAccountHandler) execute(ctx context.Context, event ActivateAccountMessage) error {
	if err := event.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid activation link")
	}

	return h.Client.Activate(ctx, event.UID, event.Token)
}

type ResendActivationMessage struct {
	Email string `json:"email"`
}

func (e ResendActivationMessage) Type() string { return "user.resend_activation" }

// Validate will run validation rules
func (e ResendActivationMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Email, validation.Required, is.Email),
	)
}

type ResendActivationHandler struct {
	Client *Client
}

func (h *ResendActivationHandler) Execute(ctx context.Context, event ResendActivationMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during activation resend",
		)
	default:
		if err := event.Validate(); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid resend activation payload")
		}
		// server answers identically whether or not the account exists
		return h.Client.ResendActivation(ctx, event.Email)
	}
}
