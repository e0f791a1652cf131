package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("dados incompletos"), http.StatusBadRequest},
		{InsufficientStock("quantidade insuficiente"), http.StatusBadRequest},
		{NotFound("membro não encontrado"), http.StatusNotFound},
		{Conflict("já existe um membro com este CPF"), http.StatusConflict},
		{Auth("credenciais inválidas"), http.StatusUnauthorized},
		{Unexpected("erro interno do servidor", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status(), tc.err.Msg)
	}
}

func TestFrom_PassesThroughDomainErrors(t *testing.T) {
	orig := Conflict("membro já inscrito neste evento")
	got := From(orig)
	assert.Same(t, orig, got)
}

func TestFrom_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	got := From(cause)
	require.NotNil(t, got)
	assert.Equal(t, KindUnexpected, got.Kind)
	assert.Equal(t, "erro interno do servidor", got.Msg)
	assert.ErrorIs(t, got, cause)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	wrapped := Unexpected("erro interno do servidor", cause)
	assert.True(t, errors.Is(wrapped, cause))
}
