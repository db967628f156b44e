package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faqIDs(list []FAQ) []string {
	out := make([]string, len(list))
	for i, f := range list {
		out[i] = f.ID
	}

	return out
}

func TestRemoveKeepsSiblingOrder(t *testing.T) {
	list := []FAQ{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	out, err := Remove(list, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, faqIDs(out))

	// the input is not modified
	assert.Equal(t, []string{"a", "b", "c", "d"}, faqIDs(list))

	_, err = Remove(list, "zzz")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestAppend(t *testing.T) {
	list := []FAQ{{ID: "a"}}

	out, added, err := Append(list, FAQ{Question: "q"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, added, out[1])

	out, added, err = Append(out, FAQ{ID: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", added.ID)
	assert.Len(t, out, 3)

	_, _, err = Append(out, FAQ{ID: "a"})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestReplace(t *testing.T) {
	list := []FAQ{{ID: "a", Question: "one"}, {ID: "b", Question: "two"}}

	out, replaced, err := Replace(list, "b", FAQ{ID: "other", Question: "changed"})
	require.NoError(t, err)
	assert.Equal(t, "b", replaced.ID)
	assert.Equal(t, []string{"a", "b"}, faqIDs(out))
	assert.Equal(t, "changed", out[1].Question)
	assert.Equal(t, "two", list[1].Question)

	_, _, err = Replace(list, "x", FAQ{})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestFind(t *testing.T) {
	list := []NavItem{{ID: "home", Label: "Home"}}

	it, err := Find(list, "home")
	require.NoError(t, err)
	assert.Equal(t, "Home", it.Label)

	_, err = Find(list, "about")
	require.ErrorIs(t, err, ErrItemNotFound)
}
