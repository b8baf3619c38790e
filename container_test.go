package chassis

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	id int
}

func TestNew(t *testing.T) {
	c := New()
	assert.NotNil(t, c)
	assert.Empty(t, c.Keys())
}

func TestRegister_Success(t *testing.T) {
	c := New()

	err := c.Register("test", func(c Container) (any, error) {
		return "value", nil
	})

	assert.NoError(t, err)
	assert.True(t, c.Has("test"))
}

func TestRegister_EmptyKey(t *testing.T) {
	c := New()

	err := c.Register("", func(c Container) (any, error) {
		return "value", nil
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestRegister_NilFactory(t *testing.T) {
	c := New()

	err := c.Register("test", nil)

	assert.ErrorIs(t, err, ErrInvalidFactory)
}

func TestRegister_Duplicate(t *testing.T) {
	c := New()

	err := c.Register("test", func(c Container) (any, error) {
		return "first", nil
	})
	require.NoError(t, err)

	err = c.Register("test", func(c Container) (any, error) {
		return "second", nil
	}, AsTransient())

	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// The original descriptor is untouched.
	info := c.Inspect("test")
	assert.Equal(t, Singleton, info.Lifetime)

	val, err := c.Resolve("test")
	require.NoError(t, err)
	assert.Equal(t, "first", val)
}

func TestRegister_WithOptions(t *testing.T) {
	c := New()

	err := c.Register("test", func(c Container) (any, error) {
		return "value", nil
	},
		AsTransient(),
		WithDependencies("dep1", "dep2"),
		WithMetadata("owner", "dashboard"),
	)

	require.NoError(t, err)

	info := c.Inspect("test")
	assert.Equal(t, Transient, info.Lifetime)
	assert.Equal(t, []string{"dep1", "dep2"}, info.Dependencies)
	assert.Equal(t, "dashboard", info.Metadata["owner"])
	assert.False(t, info.Cached)
}

func TestResolve_NotRegistered(t *testing.T) {
	c := New()

	_, err := c.Resolve("missing")

	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestResolve_Singleton(t *testing.T) {
	c := New()
	callCount := 0

	err := c.RegisterSingleton("test", func(c Container) (any, error) {
		callCount++

		return &clock{id: callCount}, nil
	})
	require.NoError(t, err)

	val1, err := c.Resolve("test")
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)

	// Second resolve observes the cached instance.
	val2, err := c.Resolve("test")
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Same(t, val1, val2)

	assert.True(t, c.Inspect("test").Cached)
}

func TestResolve_Transient(t *testing.T) {
	c := New()
	callCount := 0

	err := c.RegisterTransient("test", func(c Container) (any, error) {
		callCount++

		return &clock{}, nil
	})
	require.NoError(t, err)

	val1, err := c.Resolve("test")
	assert.NoError(t, err)

	val2, err := c.Resolve("test")
	assert.NoError(t, err)

	assert.Equal(t, 2, callCount)
	assert.NotSame(t, val1, val2)
	assert.Equal(t, val1, val2)
}

func TestResolve_Singleton_Concurrent(t *testing.T) {
	c := New()

	var mu sync.Mutex
	callCount := 0

	err := c.RegisterSingleton("test", func(c Container) (any, error) {
		mu.Lock()
		callCount++
		mu.Unlock()

		return &clock{}, nil
	})
	require.NoError(t, err)

	const n = 32
	results := make([]any, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Resolve("test")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	// Exactly one factory call; every caller observes the same instance.
	assert.Equal(t, 1, callCount)
	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestResolve_DeclaredDependenciesFirst(t *testing.T) {
	c := New()
	var order []string

	err := c.RegisterSingleton("db", func(c Container) (any, error) {
		order = append(order, "db")

		return "db", nil
	})
	require.NoError(t, err)

	err = c.RegisterSingleton("repo", func(c Container) (any, error) {
		order = append(order, "repo")

		return "repo", nil
	}, WithDependencies("db"))
	require.NoError(t, err)

	_, err = c.Resolve("repo")
	require.NoError(t, err)

	assert.Equal(t, []string{"db", "repo"}, order)
}

func TestResolve_CircularDependency(t *testing.T) {
	c := New()

	err := c.RegisterSingleton("a", func(c Container) (any, error) {
		return "a", nil
	}, WithDependencies("b"))
	require.NoError(t, err)

	err = c.RegisterSingleton("b", func(c Container) (any, error) {
		return "b", nil
	}, WithDependencies("a"))
	require.NoError(t, err)

	_, err = c.Resolve("a")

	assert.ErrorIs(t, err, ErrCircularDependency)
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestResolve_SelfDependency(t *testing.T) {
	c := New()

	err := c.RegisterTransient("a", func(c Container) (any, error) {
		return "a", nil
	}, WithDependencies("a"))
	require.NoError(t, err)

	_, err = c.Resolve("a")

	assert.ErrorIs(t, err, ErrCircularDependency)
}

func TestResolve_FactoryError(t *testing.T) {
	c := New()
	boom := errors.New("boom")

	err := c.RegisterSingleton("test", func(c Container) (any, error) {
		return nil, boom
	})
	require.NoError(t, err)

	_, err = c.Resolve("test")

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `service "test"`)

	// A failed factory is retried on the next resolve.
	assert.False(t, c.Inspect("test").Cached)
}

func TestRegisterInstance(t *testing.T) {
	c := New()
	instance := &clock{id: 7}

	err := c.RegisterInstance("clock", instance)
	require.NoError(t, err)

	// Cached before any Resolve call.
	assert.True(t, c.Inspect("clock").Cached)

	val, err := c.Resolve("clock")
	assert.NoError(t, err)
	assert.Same(t, instance, val)
}

func TestRegisterInstance_Duplicate(t *testing.T) {
	c := New()

	require.NoError(t, c.RegisterInstance("clock", &clock{}))

	err := c.RegisterInstance("clock", &clock{})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestKeys_RegistrationOrder(t *testing.T) {
	c := New()

	for _, key := range []string{"c", "a", "b"} {
		require.NoError(t, c.RegisterInstance(key, key))
	}

	assert.Equal(t, []string{"c", "a", "b"}, c.Keys())
}

func TestInspect_Unknown(t *testing.T) {
	c := New()

	info := c.Inspect("missing")

	assert.Equal(t, "missing", info.Key)
	assert.False(t, info.Cached)
}

func TestClear(t *testing.T) {
	c := New()

	require.NoError(t, c.RegisterInstance("a", "a"))
	require.NoError(t, c.RegisterScoped("b", func(c Container) (any, error) {
		return "b", nil
	}))

	c.StartScope()
	_, err := c.Resolve("b")
	require.NoError(t, err)

	c.Clear()

	assert.Empty(t, c.Keys())
	assert.False(t, c.Has("a"))

	// Clear also deactivates the scope.
	require.NoError(t, c.RegisterScoped("b", func(c Container) (any, error) {
		return "b", nil
	}))
	_, err = c.Resolve("b")
	assert.ErrorIs(t, err, ErrScopeInactive)
}

func TestValidate(t *testing.T) {
	c := New()

	require.NoError(t, c.RegisterSingleton("db", func(c Container) (any, error) {
		return "db", nil
	}))
	require.NoError(t, c.RegisterSingleton("repo", func(c Container) (any, error) {
		return "repo", nil
	}, WithDependencies("db")))

	assert.NoError(t, c.Validate())
}

func TestValidate_MissingDependency(t *testing.T) {
	c := New()

	require.NoError(t, c.RegisterSingleton("repo", func(c Container) (any, error) {
		return "repo", nil
	}, WithDependencies("db")))

	err := c.Validate()

	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Contains(t, err.Error(), `"repo" depends on "db"`)
}

func TestValidate_Cycle(t *testing.T) {
	c := New()

	require.NoError(t, c.RegisterSingleton("a", func(c Container) (any, error) {
		return "a", nil
	}, WithDependencies("b")))
	require.NoError(t, c.RegisterSingleton("b", func(c Container) (any, error) {
		return "b", nil
	}, WithDependencies("a")))

	assert.ErrorIs(t, c.Validate(), ErrCircularDependency)
}
