package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "user+tag@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plainaddress", "@no-local.com", "user@", "user@.com", "user name@example.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestKeyConstraintReturnsFirstMatchingKey(t *testing.T) {
	detail := `Key (email)=(a@b.co) already exists.`
	assert.Equal(t, "email", KeyConstraint(detail, []string{"email", "username"}))

	detail = `Key (username)=(tester) already exists.`
	assert.Equal(t, "username", KeyConstraint(detail, []string{"email", "username"}))

	// when both appear, the configured order decides
	detail = `Key (email, username)=(a@b.co, tester) already exists.`
	assert.Equal(t, "email", KeyConstraint(detail, []string{"email", "username"}))
	assert.Equal(t, "username", KeyConstraint(detail, []string{"username", "email"}))

	assert.Equal(t, "", KeyConstraint("Key (title)=(x) already exists.", []string{"email", "username"}))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Email", Capitalize("email"))
	assert.Equal(t, "Username", Capitalize("username"))
	assert.Equal(t, "", Capitalize(""))
}
