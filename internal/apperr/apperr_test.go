package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfSurvivesWrapping(t *testing.T) {
	base := New(KindOutOfOrder, "Answer previous questions in order first.")
	wrapped := fmt.Errorf("submitting answer: %w", base)

	assert.Equal(t, KindOutOfOrder, KindOf(wrapped))
	assert.True(t, IsOutOfOrder(wrapped))
	assert.Equal(t, "Answer previous questions in order first.", MessageOf(wrapped))
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "boom", MessageOf(err))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("row missing")
	err := Wrap(KindNotFound, "Form not found", cause)

	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "NotFound")
	assert.Contains(t, err.Error(), "row missing")
}

func TestNotFoundHelper(t *testing.T) {
	err := NotFound("Question")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Question not found", MessageOf(err))
}
