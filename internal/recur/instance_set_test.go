package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceSet_AppendSortIterate(t *testing.T) {
	s := NewInstanceSet()
	s.Append(MakeInstance(2024, 0, 3, 0, 0, 0))
	s.Append(MakeInstance(2024, 0, 1, 0, 0, 0))
	s.Append(MakeInstance(2024, 0, 2, 0, 0, 0))
	require.Equal(t, 3, s.Len())

	s.Sort()
	assert.True(t, s.HasNext())
	assert.Equal(t, 1, s.Next().Day())
	assert.Equal(t, 2, s.Next().Day())
	assert.Equal(t, 3, s.Next().Day())
	assert.False(t, s.HasNext())
}

func TestInstanceSet_ClearResetsWithoutReallocating(t *testing.T) {
	s := NewInstanceSet()
	s.Append(MakeInstance(2024, 0, 1, 0, 0, 0))
	s.Sort()
	s.Next()
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasNext())
}

func TestInstanceSet_At(t *testing.T) {
	s := NewInstanceSet()
	s.Append(MakeInstance(2024, 0, 5, 0, 0, 0))
	s.Append(MakeInstance(2024, 0, 1, 0, 0, 0))
	s.Sort()
	assert.Equal(t, 1, s.At(0).Day())
	assert.Equal(t, 5, s.At(1).Day())
}
