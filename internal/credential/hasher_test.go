package credential

import (
	"crypto/sha512"
	"encoding/base64"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N2Core/N2Identity/internal/db/models"
)

func TestSHA384HasherKnownValue(t *testing.T) {
	sum := sha512.Sum384([]byte("ALICE:Passw0rd!:stamp"))
	expected := base64.StdEncoding.EncodeToString(sum[:])

	got, err := SHA384Hasher{}.Hash("ALICE", "stamp", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestSHA384HasherDeterminism(t *testing.T) {
	h := SHA384Hasher{}

	base, err := h.Hash("ALICE", "stamp-1", "secret")
	require.NoError(t, err)

	again, err := h.Hash("ALICE", "stamp-1", "secret")
	require.NoError(t, err)
	assert.Equal(t, base, again)

	testCases := []struct {
		name     string
		userName string
		stamp    string
		password string
	}{
		{name: "other user name", userName: "BOB", stamp: "stamp-1", password: "secret"},
		{name: "other stamp", userName: "ALICE", stamp: "stamp-2", password: "secret"},
		{name: "other password", userName: "ALICE", stamp: "stamp-1", password: "Secret"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := h.Hash(tc.userName, tc.stamp, tc.password)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestSHA384HasherEmptyStamp(t *testing.T) {
	_, err := SHA384Hasher{}.Hash("ALICE", "", "secret")
	assert.ErrorIs(t, err, ErrEmptyStamp)
}

func TestHasherVerify(t *testing.T) {
	fast := &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	hashers := map[string]Hasher{
		AlgorithmSHA384:   SHA384Hasher{},
		AlgorithmArgon2id: NewArgon2Hasher(fast),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			stamp, err := NewSecurityStamp()
			require.NoError(t, err)

			hash, err := h.Hash("ALICE", stamp, "Passw0rd!")
			require.NoError(t, err)

			user := &models.User{NormalizedUserName: "ALICE", SecurityStamp: stamp, PasswordHash: hash}

			assert.True(t, h.Verify(user, "Passw0rd!"))
			assert.False(t, h.Verify(user, "passw0rd!"))
			assert.False(t, h.Verify(nil, "Passw0rd!"))

			rotated, err := NewSecurityStamp()
			require.NoError(t, err)

			user.SecurityStamp = rotated
			assert.False(t, h.Verify(user, "Passw0rd!"), "stamp rotation must detach the hash")
		})
	}
}

func TestNew(t *testing.T) {
	h, err := New("")
	require.NoError(t, err)
	assert.IsType(t, SHA384Hasher{}, h)

	h, err = New(AlgorithmArgon2id)
	require.NoError(t, err)
	assert.IsType(t, Argon2Hasher{}, h)

	_, err = New("md5")
	assert.ErrorIs(t, err, ErrUnknownHasher)
}

func TestNewSecurityStamp(t *testing.T) {
	a, err := NewSecurityStamp()
	require.NoError(t, err)

	b, err := NewSecurityStamp()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, stampBytes)
}
