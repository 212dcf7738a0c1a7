package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() ([]byte, error) { return []byte(pw), err }
}

func TestParseCreateAdmin_Flags(t *testing.T) {
	stubPassword(t, "", errors.New("should not prompt"))

	args, err := parseCreateAdmin([]string{"-username", "root", "-email", "root@example.com", "-password", "s3cret"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "Admin", args.input.Name)
	assert.Equal(t, "root", args.input.Username)
	assert.Equal(t, "s3cret", args.input.Password)
}

func TestParseCreateAdmin_PromptsForPassword(t *testing.T) {
	stubPassword(t, "typed-in\n", nil)

	var out bytes.Buffer
	args, err := parseCreateAdmin([]string{"-username", "root", "-email", "root@example.com"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "typed-in", args.input.Password)
	assert.Contains(t, out.String(), "Password: ")
}

func TestParseCreateAdmin_MissingFlags(t *testing.T) {
	_, err := parseCreateAdmin([]string{"-username", "root"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseResetPassword(t *testing.T) {
	stubPassword(t, "", nil)

	_, err := parseResetPassword([]string{"-username", "alice"}, &bytes.Buffer{})
	assert.EqualError(t, err, "password must not be empty")

	args, err := parseResetPassword([]string{"-username", "alice", "-password", "n3w"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "alice", args.username)
	assert.Equal(t, "n3w", args.password)

	_, err = parseResetPassword(nil, &bytes.Buffer{})
	assert.Error(t, err)
}
