package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	urls := expand("http://api", []string{
		"/gameincollections/user/{userID}",
		"/collection/user/{userID}",
		"/collection",
	}, map[string]string{"userID": "u1"})

	assert.Equal(t, []string{
		"http://api/gameincollections/user/u1",
		"http://api/collection/user/u1",
		"http://api/collection",
	}, urls, "declared order must be preserved")
}

func TestRoutesMerge(t *testing.T) {
	t.Parallel()

	merged := DefaultRoutes().merge(Routes{
		ListItems: []string{"/v2/items/{userID}"},
	})

	assert.Equal(t, []string{"/v2/items/{userID}"}, merged.ListItems)
	assert.Equal(t, DefaultRoutes().CreateItem, merged.CreateItem, "unset lists keep defaults")
}
