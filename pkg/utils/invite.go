package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// InviteCodeLength is the fixed length of team invite codes.
const InviteCodeLength = 8

const inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInviteCode returns a random uppercase alphanumeric code of the given length.
func GenerateInviteCode(length int) (string, error) {
	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(inviteCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(inviteCharset[n.Int64()])
	}
	return sb.String(), nil
}

// IsInviteCode reports whether s has the shape of a generated invite code.
func IsInviteCode(s string) bool {
	if len(s) != InviteCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(inviteCharset, s[i]) < 0 {
			return false
		}
	}
	return true
}
