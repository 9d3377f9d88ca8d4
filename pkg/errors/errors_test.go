package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrBookingConflict, "slot taken")

	assert.Equal(t, "slot taken", err.Message)
	assert.Equal(t, ErrBookingConflict.Message, "the tutor already has a booking in this time slot")
	assert.True(t, errors.Is(err, ErrBookingConflict))
	assert.False(t, errors.Is(err, ErrInvalidInterval))
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)

	wrapped := fmt.Errorf("context: %w", ErrForbiddenTransition)
	assert.Same(t, ErrForbiddenTransition, FromError(wrapped))
	assert.Nil(t, FromError(nil))
}

func TestTaxonomyIsDistinguishable(t *testing.T) {
	codes := map[string]struct{}{}
	for _, e := range []*Error{ErrInvalidInterval, ErrBookingConflict, ErrForbiddenTransition, ErrStoreUnavailable} {
		_, dup := codes[e.Code]
		require.False(t, dup, e.Code)
		codes[e.Code] = struct{}{}
		assert.NotEqual(t, ErrInternal.Message, e.Message)
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Wrap(errors.New("dial tcp: refused"), ErrStoreUnavailable.Code, ErrStoreUnavailable.Status, "store down")
	assert.Equal(t, "store down: dial tcp: refused", err.Error())
	assert.Equal(t, "<nil>", (*Error)(nil).Error())
}
