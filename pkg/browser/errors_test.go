package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesOwnKindOnly(t *testing.T) {
	sentinels := map[Kind]error{
		KindEnvironment:   ErrEnvironment,
		KindNavigation:    ErrNavigation,
		KindLocate:        ErrLocate,
		KindTimeout:       ErrTimeout,
		KindModalBlocking: ErrModalBlocking,
	}
	for kind, sentinel := range sentinels {
		err := newError(kind, "op", "", nil)
		for other, s := range sentinels {
			assert.Equal(t, kind == other, errors.Is(err, s), "%s vs %s", kind, other)
		}
		assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), sentinel))
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("cdp closed")
	err := newError(KindNavigation, "navigate", "http://x", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNavigation)
	assert.Equal(t, "navigate: navigation failed: http://x: cdp closed", err.Error())
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("scenario: %w", newError(KindTimeout, "wait", "", nil)))
	require.True(t, ok)
	assert.Equal(t, KindTimeout, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "modal-blocking", KindModalBlocking.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.Equal(t, "op: kind(42)", (&Error{Kind: 42, Op: "op"}).Error())
}
