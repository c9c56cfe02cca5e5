package authclient_test

import (
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	authclient "github.com/goliatone/go-authclient"
)

func TestIsAuthorizationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{
			"auth category",
			errors.New("authorization failed", errors.CategoryAuth),
			true,
		},
		{
			"authz category",
			errors.New("access forbidden", errors.CategoryAuthz),
			true,
		},
		{
			"wrapped auth",
			fmt.Errorf("calling api: %w", errors.New("authorization failed", errors.CategoryAuth)),
			true,
		},
		{
			"validation category",
			errors.New("bad payload", errors.CategoryValidation),
			false,
		},
		{
			"plain error",
			fmt.Errorf("boom"),
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authclient.IsAuthorizationFailure(tc.err))
		})
	}
}

func TestIsSessionExpired(t *testing.T) {
	assert.True(t, authclient.IsSessionExpired(authclient.ErrSessionExpired))
	assert.False(t, authclient.IsSessionExpired(authclient.ErrNoSession))
	assert.False(t, authclient.IsSessionExpired(nil))
	assert.False(t, authclient.IsSessionExpired(fmt.Errorf("boom")))
}

func TestIsValidationFailure(t *testing.T) {
	ozzoErr := validation.Errors{"email": fmt.Errorf("must be a valid email address")}

	assert.True(t, authclient.IsValidationFailure(ozzoErr))
	assert.True(t, authclient.IsValidationFailure(
		errors.Wrap(ozzoErr, errors.CategoryValidation, "invalid payload"),
	))
	assert.False(t, authclient.IsValidationFailure(authclient.ErrNoSession))
	assert.False(t, authclient.IsValidationFailure(nil))
}

func TestValidationErrorMapFromOzzo(t *testing.T) {
	err := validation.Errors{
		"email":    fmt.Errorf("must be a valid email address"),
		"password": fmt.Errorf("the length must be between 8 and 100"),
	}

	fields := authclient.ValidationErrorMap(err)

	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "the length must be between 8 and 100", fields["password"])
}

func TestValidationErrorMapFromServerPayload(t *testing.T) {
	err := errors.New("identity service rejected the request", errors.CategoryValidation).
		WithMetadata(map[string]any{
			"payload": map[string]any{
				"password": []any{"This password is too common.", "Too short."},
			},
		})

	fields := authclient.ValidationErrorMap(err)

	assert.Equal(t, map[string]string{"password": "This password is too common."}, fields)
}

func TestValidationErrorMapEmpty(t *testing.T) {
	assert.Empty(t, authclient.ValidationErrorMap(nil))
	assert.Empty(t, authclient.ValidationErrorMap(fmt.Errorf("boom")))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"detail wins",
			errors.New("authorization failed", errors.CategoryAuth).
				WithMetadata(map[string]any{
					"payload": map[string]any{
						"detail":  "Given token not valid for any token type",
						"message": "ignored",
					},
				}),
			"Given token not valid for any token type",
		},
		{
			"message fallback",
			errors.New("identity service rejected the request", errors.CategoryValidation).
				WithMetadata(map[string]any{
					"payload": map[string]any{"message": "Something went wrong"},
				}),
			"Something went wrong",
		},
		{
			"field array fallback",
			errors.New("identity service rejected the request", errors.CategoryValidation).
				WithMetadata(map[string]any{
					"payload": map[string]any{
						"email": []any{"Enter a valid email address."},
					},
				}),
			"Enter a valid email address.",
		},
		{
			"rich message",
			errors.New("session expired", errors.CategoryAuth),
			"session expired",
		},
		{
			"plain error",
			fmt.Errorf("connection refused"),
			"connection refused",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authclient.ErrorMessage(tc.err))
		})
	}
}
