package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Name    string    `json:"name"`
		Centers []float64 `json:"centers"`
	}

	in := payload{Name: "squared-euclidean", Centers: []float64{1, 2.5, -3}}

	data, err := JSON{}.Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("protobuf")
	assert.False(t, ok)
}

func TestMustMarshalFallsBackToDefault(t *testing.T) {
	data := MustMarshal(nil, map[string]int{"k": 3})
	assert.JSONEq(t, `{"k":3}`, string(data))
}
