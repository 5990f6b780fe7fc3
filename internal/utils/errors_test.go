package utils

import (
	"errors"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateAppError(t *testing.T) {
	status, message := Translate("/api/v1/anime", NewAppError(404, "Anime not found!"))

	assert.Equal(t, 404, status)
	assert.Equal(t, "Anime not found!", message)
}

func TestTranslateUniqueViolationFromDetail(t *testing.T) {
	err := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (email)=(a@a.com) already exists.",
	}

	status, message := Translate("/api/v1/auth/register", err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "email has to be unique!", message)
}

func TestTranslateUniqueViolationFromConstraint(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uni_users_username",
	}

	status, message := Translate("/api/v1/auth/register", err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "username has to be unique!", message)
}

func TestTranslateValidationErrors(t *testing.T) {
	type sample struct {
		Username string  `validate:"required,min=3"`
		Email    string  `validate:"required,email"`
		Rating   float64 `validate:"gte=1,lte=10"`
	}

	v := validator.New()
	err := v.Struct(sample{Username: "ab", Email: "nope", Rating: 11})
	require.Error(t, err)

	status, message := Translate("/api/v1/admin/anime", err)

	assert.Equal(t, 400, status)
	fields, ok := message.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Username must be at least 3 characters!", fields["username"])
	assert.Equal(t, "Email must be a valid email address!", fields["email"])
	assert.Equal(t, "Rating cannot exceed 10!", fields["rating"])
}

func TestTranslateWrongID(t *testing.T) {
	_, err := strconv.Atoi("not-a-number")
	require.Error(t, err)

	status, message := Translate("/api/v1/anime/details/abc", err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "The /api/v1/anime/details/abc is not found because of wrong ID!", message)
}

func TestTranslateUnknownErrorDefaultsTo500(t *testing.T) {
	status, message := Translate("/api/v1/anime", errors.New("connection reset"))

	assert.Equal(t, 500, status)
	assert.Equal(t, "connection reset", message)
}
