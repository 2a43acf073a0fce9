package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
}

func TestFrom_CopiesEntries(t *testing.T) {
	src := map[string]int{"one": 1}
	r := From(src)

	src["two"] = 2

	assert.Equal(t, 1, r.Len())
	assert.False(t, r.Has("two"))
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	r.Register("one", 1)
	r.Register("two", 2)

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Get("two")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestRegisterOverwrite(t *testing.T) {
	r := New[string, string]()

	r.Register("+", "add")
	r.Register("+", "concat")

	v, ok := r.Get("+")
	assert.True(t, ok)
	assert.Equal(t, "concat", v)
}

func TestRegisterMany_LastWriteWins(t *testing.T) {
	r := From(map[string]string{"+": "add", "-": "sub"})

	r.RegisterMany(map[string]string{"+": "concat", "&": "and"})

	assert.Equal(t, 3, r.Len())
	v, _ := r.Get("+")
	assert.Equal(t, "concat", v)
	v, _ = r.Get("-")
	assert.Equal(t, "sub", v)
}

func TestRegisterManyEmpty(t *testing.T) {
	r := New[string, int]()
	r.Register("existing", 42)

	r.RegisterMany(map[string]int{})
	r.RegisterMany(nil)

	assert.Equal(t, 1, r.Len())
}

func TestHas(t *testing.T) {
	r := New[string, int]()
	r.Register("key", 42)

	assert.True(t, r.Has("key"))
	assert.False(t, r.Has("nonexistent"))
}

func TestKeys(t *testing.T) {
	r := From(map[string]int{"<": 1, "=": 2, ">": 3})

	assert.ElementsMatch(t, []string{"<", "=", ">"}, r.Keys())
	assert.Empty(t, New[string, int]().Keys())
}

func TestSnapshot_IsIndependent(t *testing.T) {
	r := From(map[string]int{"a": 1})

	snap := r.Snapshot()
	snap["b"] = 2
	r.Register("c", 3)

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, snap)
	assert.False(t, r.Has("b"))
}

func TestClone_DoesNotLeakIntoOriginal(t *testing.T) {
	defaults := From(map[string]string{"+": "add"})

	clone := defaults.Clone()
	clone.Register("+", "concat")
	clone.Register("~", "match")

	v, _ := defaults.Get("+")
	assert.Equal(t, "add", v)
	assert.Equal(t, 1, defaults.Len())

	v, _ = clone.Get("+")
	assert.Equal(t, "concat", v)
	assert.Equal(t, 2, clone.Len())
}

func TestConcurrentAccess(t *testing.T) {
	r := New[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Register(n, n*n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = r.Clone()
			_, _ = r.Get(n)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, r.Len())
	v, ok := r.Get(7)
	assert.True(t, ok)
	assert.Equal(t, 49, v)
}
