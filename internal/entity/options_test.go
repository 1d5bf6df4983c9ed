package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-xr/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionSet(t *testing.T) {
	t.Run("Parses a complete record", func(t *testing.T) {
		// Given: a record as written by the setup flow
		data := []byte(`{
			"options": ["a) 4","b) 3","c) 5","d) 6","e) 7","f) 8","g) 9","h) 10","i) 11"],
			"rightAnswers": ["a","d","g"],
			"topic": "addition"
		}`)

		// When: parsing it
		set, err := ParseOptionSet(data)

		// Then: every field is carried over
		require.NoError(t, err)
		assert.Len(t, set.Options, OptionCount)
		assert.Equal(t, "a) 4", set.Options[0])
		assert.Equal(t, []string{"a", "d", "g"}, set.RightAnswers)
		assert.Equal(t, "addition", set.Topic)
	})

	t.Run("Optional fields may be missing", func(t *testing.T) {
		data := []byte(`{"options":["1","2","3","4","5","6","7","8","9"]}`)

		set, err := ParseOptionSet(data)

		require.NoError(t, err)
		assert.Empty(t, set.RightAnswers)
		assert.Empty(t, set.Topic)
	})

	cases := []struct {
		name string
		data string
	}{
		{name: "wrong length", data: `{"options":["a","b"]}`},
		{name: "not json", data: `{"options":`},
		{name: "missing options", data: `{"topic":"x"}`},
		{name: "options is an object", data: `{"options":{"a":1}}`},
		{name: "non-string entry", data: `{"options":["1","2","3","4","5","6","7","8",9]}`},
		{name: "empty input", data: ``},
	}

	for _, tc := range cases {
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			set, err := ParseOptionSet([]byte(tc.data))

			require.ErrorIs(t, err, apperror.ErrMalformedOptions)
			assert.Nil(t, set)
		})
	}
}

func TestOptionSet_RoundTripThroughJSON(t *testing.T) {
	// Given: a valid set
	set := &OptionSet{
		Options:      []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		RightAnswers: []string{"b"},
		Topic:        "numbers",
	}
	require.NoError(t, set.Validate())

	// When: marshaling with encoding/json and parsing back
	data, err := json.Marshal(set)
	require.NoError(t, err)
	parsed, err := ParseOptionSet(data)

	// Then: the parser accepts what the repository writes
	require.NoError(t, err)
	assert.Equal(t, set, parsed)
}

func TestOptionSet_IDs(t *testing.T) {
	set := &OptionSet{Options: []string{"x", "y"}}

	ids := set.IDs()

	assert.Equal(t, []OptionID{{Index: 0, Text: "x"}, {Index: 1, Text: "y"}}, ids)
	assert.ErrorIs(t, set.Validate(), apperror.ErrMalformedOptions)
}
