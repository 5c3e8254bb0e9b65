package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfUnwrapsChain(t *testing.T) {
	base := New(CodeAlreadyMember, "already a member of this team")
	wrapped := fmt.Errorf("join team: %w", base)

	assert.Equal(t, CodeAlreadyMember, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeAlreadyMember))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsPrecondition(wrapped))
}

func TestCodeOfForeignAndNil(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "create team failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: create team failed: connection reset", err.Error())
	assert.Equal(t, "not_registered: x", New(CodeNotRegistered, "x").Error())
	assert.True(t, IsPrecondition(New(CodeTeamFull, "team is full")))
}

func TestWithMeta(t *testing.T) {
	err := New(CodeNotFound, "team not found").WithMeta("team_id", uint(7))
	assert.Equal(t, uint(7), err.Meta["team_id"])
}
