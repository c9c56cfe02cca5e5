package authclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/goliatone/go-authclient"
)

func TestRegisterUserHandler(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusCreated, "")
	handler := &authclient.RegisterUserHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.RegisterUserMessage{
		Email:    "pepe@example.com",
		Username: "pepe",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	req := stub.last(t)
	assert.Equal(t, "/auth/users/", req.path)
	assert.Equal(t, "pepe", req.body["username"])
}

func TestRegisterUserHandlerDerivesUsername(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusCreated, "")
	handler := &authclient.RegisterUserHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.RegisterUserMessage{
		Email:    "pepe.rone@example.com",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "pepe.rone", stub.last(t).body["username"])
}

func TestRegisterUserHandlerValidation(t *testing.T) {
	stub := newIdentityStub(t)
	handler := &authclient.RegisterUserHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.RegisterUserMessage{
		Email:    "not-an-email",
		Password: "short",
	})

	assert.True(t, authclient.IsValidationFailure(err))
	assert.Empty(t, stub.requests)
}

func TestRegisterUserHandlerCancelledContext(t *testing.T) {
	stub := newIdentityStub(t)
	handler := &authclient.RegisterUserHandler{Client: newTestClient(t, stub)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, authclient.RegisterUserMessage{
		Email:    "pepe@example.com",
		Password: "secret-pass",
	})

	assert.Error(t, err)
	assert.Empty(t, stub.requests)
}

func TestActivateAccountHandler(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusNoContent, "")
	handler := &authclient.ActivateAccountHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.ActivateAccountMessage{
		UID:   "uid-1",
		Token: "tok-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "/auth/users/activation/", stub.last(t).path)
}

func TestActivateAccountHandlerRejectsPartialLink(t *testing.T) {
	stub := newIdentityStub(t)
	handler := &authclient.ActivateAccountHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.ActivateAccountMessage{UID: "uid-1"})

	assert.True(t, authclient.IsValidationFailure(err))
	assert.Empty(t, stub.requests)
}

func TestResendActivationHandler(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusNoContent, "")
	handler := &authclient.ResendActivationHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.ResendActivationMessage{
		Email: "pepe@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "/auth/users/resend_activation/", stub.last(t).path)
}

func TestInitializePasswordResetHandler(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusNoContent, "")
	handler := &authclient.InitializePasswordResetHandler{Client: newTestClient(t, stub)}

	var resp *authclient.InitializePasswordResetResponse
	err := handler.Execute(context.Background(), authclient.InitializePasswordResetMessage{
		Email: "pepe@example.com",
		OnResponse: func(r *authclient.InitializePasswordResetResponse) {
			resp = r
		},
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "pepe@example.com", resp.Email)
	assert.Equal(t, "/auth/users/reset_password/", stub.last(t).path)
}

func TestInitializePasswordResetHandlerValidation(t *testing.T) {
	stub := newIdentityStub(t)
	handler := &authclient.InitializePasswordResetHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.InitializePasswordResetMessage{
		Email: "not-an-email",
	})

	assert.True(t, authclient.IsValidationFailure(err))
	assert.Empty(t, stub.requests)
}

func TestFinalizePasswordResetHandler(t *testing.T) {
	stub := newIdentityStub(t)
	stub.respond(http.StatusNoContent, "")
	handler := &authclient.FinalizePasswordResetHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.FinalizePasswordResetMessage{
		UID:             "uid-1",
		Token:           "tok-1",
		Password:        "new-pass-123",
		ConfirmPassword: "new-pass-123",
	})

	require.NoError(t, err)
	req := stub.last(t)
	assert.Equal(t, "/auth/users/reset_password_confirm/", req.path)
	assert.Equal(t, "new-pass-123", req.body["new_password"])
	assert.Equal(t, "new-pass-123", req.body["re_new_password"])
}

func TestFinalizePasswordResetHandlerMismatch(t *testing.T) {
	stub := newIdentityStub(t)
	handler := &authclient.FinalizePasswordResetHandler{Client: newTestClient(t, stub)}

	err := handler.Execute(context.Background(), authclient.FinalizePasswordResetMessage{
		UID:             "uid-1",
		Token:           "tok-1",
		Password:        "new-pass-123",
		ConfirmPassword: "different-pass",
	})

	assert.True(t, authclient.IsValidationFailure(err))
	assert.Empty(t, stub.requests)
}

func TestMessageTypes(t *testing.T) {
	assert.Equal(t, "user.register", authclient.RegisterUserMessage{}.Type())
	assert.Equal(t, "user.activation", authclient.ActivateAccountMessage{}.Type())
	assert.Equal(t, "user.resend_activation", authclient.ResendActivationMessage{}.Type())
	assert.Equal(t, "user.password_reset", authclient.InitializePasswordResetMessage{}.Type())
	assert.Equal(t, "user.password_reset_finalize", authclient.FinalizePasswordResetMessage{}.Type())
}
