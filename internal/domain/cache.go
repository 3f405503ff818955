package domain

import "fmt"

// Cache memoizes transformed literal values for one pass invocation.
// The transform runs at most once per distinct value; it must be pure.
type Cache struct {
	values map[string]string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]string)}
}

// Resolve returns the cached replacement for value, computing it with fn on
// first use. A failing fn caches nothing.
func (c *Cache) Resolve(value string, fn TransformFunc) (string, error) {
	if cached, ok := c.values[value]; ok {
		return cached, nil
	}

	replaced, err := callTransform(fn, value)
	if err != nil {
		return "", err
	}

	c.values[value] = replaced

	return replaced, nil
}

// Len returns the number of cached values.
func (c *Cache) Len() int {
	return len(c.values)
}

func callTransform(fn TransformFunc, value string) (replaced string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transform %q panicked: %v", value, r)
		}
	}()

	return fn(value)
}

func callPredicate(fn PredicateFunc, value string) (accepted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicate %q panicked: %v", value, r)
		}
	}()

	return fn(value), nil
}
