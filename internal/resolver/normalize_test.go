package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestItems_ShapeDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "top-level array",
			body: `[{"id":"a"},{"id":"b"}]`,
			want: 2,
		},
		{
			name: "collections wrapper",
			body: `{"collections":[{"id":"a"}]}`,
			want: 1,
		},
		{
			name: "items wrapper",
			body: `{"items":[{"id":"a"},{"id":"b"},{"id":"c"}]}`,
			want: 3,
		},
		{
			name: "games wrapper",
			body: `{"games":[{"id":"a"}]}`,
			want: 1,
		},
		{
			name: "wrapper keys tried before unknown arrays",
			body: `{"extras":[1,2,3],"items":[{"id":"a"}]}`,
			want: 1,
		},
		{
			name: "first array-valued property as a last resort",
			body: `{"total":2,"records":[{"id":"a"},{"id":"b"}]}`,
			want: 2,
		},
		{
			name: "no array anywhere",
			body: `{"status":"ok"}`,
			want: 0,
		},
		{
			name: "scalar body",
			body: `"nothing here"`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, Items(gjson.Parse(tt.body)), tt.want)
		})
	}
}

func TestOwnerID_Aliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		want string
	}{
		{name: "userId", row: `{"userId":"u1"}`, want: "u1"},
		{name: "user as plain id", row: `{"user":"u2"}`, want: "u2"},
		{name: "userid", row: `{"userid":"u3"}`, want: "u3"},
		{name: "user_id", row: `{"user_id":"u4"}`, want: "u4"},
		{name: "populated user object", row: `{"user":{"_id":"u5","name":"x"}}`, want: "u5"},
		{name: "user object with id", row: `{"user":{"id":"u6"}}`, want: "u6"},
		{name: "numeric id", row: `{"userId":42}`, want: "42"},
		{name: "alias order: userId wins over user_id", row: `{"user_id":"late","userId":"early"}`, want: "early"},
		{name: "no owner field", row: `{"gameTitle":"Shenmue"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, OwnerID(gjson.Parse(tt.row)))
		})
	}
}

func TestOwnedBy(t *testing.T) {
	t.Parallel()

	body := gjson.Parse(`{"items":[
		{"id":"a","userId":"u1"},
		{"id":"b","user_id":"u2"},
		{"id":"c","user":{"_id":"u1"}},
		{"id":"d"}
	]}`)

	rows := Items(body)
	require.Len(t, rows, 4)

	mine := OwnedBy(rows, "u1")
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].Get("id").String())
	assert.Equal(t, "c", mine[1].Get("id").String())

	assert.Empty(t, OwnedBy(rows, "nobody"))
}
