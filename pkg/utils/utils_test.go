package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode(InviteCodeLength)
		require.NoError(t, err)
		require.True(t, IsInviteCode(code), "unexpected code %q", code)
		seen[code] = true
	}
	// 36^8 codes; 200 draws colliding would point at a broken source.
	assert.Len(t, seen, 200)
}

func TestIsInviteCode(t *testing.T) {
	assert.True(t, IsInviteCode("ABC12345"))
	assert.False(t, IsInviteCode("abc12345"))
	assert.False(t, IsInviteCode("ABC1234"))
	assert.False(t, IsInviteCode("ABC-2345"))
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]string{" Go ", "React", "", "Go", "react"})
	assert.Equal(t, []string{"Go", "React", "react"}, got)
	assert.Empty(t, NormalizeSet(nil))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps([]string{"Go", "SQL"}, []string{"Rust", "SQL"}))
	assert.False(t, Overlaps([]string{"Go"}, []string{"go"}))
	assert.False(t, Overlaps(nil, []string{"Go"}))
	assert.False(t, Overlaps([]string{"Go"}, nil))
}
