package genai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Score *flexNumber `json:"score"`
	Tags  flexStrings `json:"tags"`
}

func TestDecodeJSONAcceptsProseAndFences(t *testing.T) {
	inputs := []string{
		`{"score": 10, "tags": ["a"]}`,
		"```json\n{\"score\": 10, \"tags\": [\"a\"]}\n```",
		`Here is your result: {"score": 10, "tags": ["a"]} Enjoy!`,
		`{"score": 10, "tags": ["a"],}`,
		`{'score': 10, 'tags': ['a']}`,
	}
	for _, input := range inputs {
		v, err := decodeJSON[decodeTarget](input)
		require.NoError(t, err, input)
		require.NotNil(t, v.Score)
		require.Equal(t, flexNumber(10), *v.Score)
		require.Equal(t, flexStrings{"a"}, v.Tags)
	}
}

func TestDecodeJSONEmpty(t *testing.T) {
	_, err := decodeJSON[decodeTarget]("   ")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestFlexNumber(t *testing.T) {
	cases := map[string]float64{
		`12`:        12,
		`12.5`:      12.5,
		`"300"`:     300,
		`"25g"`:     25,
		`" 7 min "`: 7,
	}
	for input, want := range cases {
		var n flexNumber
		require.NoError(t, n.UnmarshalJSON([]byte(input)), input)
		require.Equal(t, want, float64(n), input)
	}

	var n flexNumber
	require.Error(t, n.UnmarshalJSON([]byte(`"lots"`)))
	require.Error(t, n.UnmarshalJSON([]byte(`[1]`)))
}

func TestFlexStrings(t *testing.T) {
	var l flexStrings
	require.NoError(t, l.UnmarshalJSON([]byte(`["a", "", 2, true, {"x": 1}]`)))
	require.Equal(t, flexStrings{"a", "2", "true"}, l)

	require.NoError(t, l.UnmarshalJSON([]byte(`null`)))
	require.Equal(t, []string{}, l.orEmpty())

	require.Error(t, l.UnmarshalJSON([]byte(`{"a": 1}`)))
}
