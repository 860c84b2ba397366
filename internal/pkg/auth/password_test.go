package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *Argon2Hasher {
	// Cheap parameters keep the suite fast
	return NewArgon2Hasher(HashParams{Memory: 1024, Iterations: 1, Parallelism: 1})
}

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", encoded)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.True(t, h.Verify(encoded, "s3cret-pass"))
	assert.False(t, h.Verify(encoded, "s3cret-pasS"))
	assert.False(t, h.Verify(encoded, ""))
}

func TestArgon2Hasher_SaltIsRandom(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify(a, "same"))
	assert.True(t, h.Verify(b, "same"))
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	encoded, err := NewArgon2Hasher(HashParams{Memory: 2048, Iterations: 2, Parallelism: 1}).Hash("pw")
	require.NoError(t, err)

	// A hasher configured differently must still verify old hashes
	assert.True(t, testHasher().Verify(encoded, "pw"))
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	h := testHasher()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plaintext", "password"},
		{"bcrypt", "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"},
		{"wrong version", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5"},
		{"zero params", "$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5"},
		{"missing key", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, h.Verify(tt.encoded, "password"))
			})
		})
	}
}

func TestNewArgon2Hasher_Defaults(t *testing.T) {
	h := NewArgon2Hasher(HashParams{})
	assert.Equal(t, DefaultHashParams(), h.params)
}
