package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", 1)
	o.Set("a", []any{"x"})
	o.Set("z", 2)

	assert.Equal(t, []string{"z", "a"}, Keys(o))
	assert.Equal(t, 2, o.Len())
	v, ok := o.Get("z")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":2,"a":["x"]}`, string(out))
}

func TestObjectNested(t *testing.T) {
	inner := NewObject()
	inner.Set("k", "v")
	outer := NewObject()
	outer.Set("inner", inner)

	out, err := json.Marshal(map[string]any{"body": outer})
	require.NoError(t, err)
	assert.Equal(t, `{"body":{"inner":{"k":"v"}}}`, string(out))
}

func TestObjectEmpty(t *testing.T) {
	out, err := json.Marshal(NewObject())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
	assert.Empty(t, Keys(nil))
}
