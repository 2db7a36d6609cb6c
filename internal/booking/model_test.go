package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("Empty defaults to ALL", func(t *testing.T) {
		s, err := ParseState("")
		require.NoError(t, err)
		assert.Equal(t, StateAll, s)
	})

	t.Run("Known states, case-insensitive", func(t *testing.T) {
		cases := map[string]State{
			"ALL":      StateAll,
			"all":      StateAll,
			"Current":  StateCurrent,
			"PAST":     StatePast,
			"future":   StateFuture,
			"WAITING":  StateWaiting,
			"rejected": StateRejected,
		}
		for raw, want := range cases {
			s, err := ParseState(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, want, s, raw)
		}
	})

	t.Run("Anything else fails, APPROVED included", func(t *testing.T) {
		for _, raw := range []string{"APPROVED", "SOMEDAY", "CURRENTLY", " ALL"} {
			_, err := ParseState(raw)
			assert.ErrorIs(t, err, ErrUnknownState, raw)
		}
	})
}
