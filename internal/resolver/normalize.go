package resolver

import (
	"github.com/tidwall/gjson"
)

// itemArrayKeys are the conventional wrapper keys a backend may nest the
// item array under, tried in order.
var itemArrayKeys = []string{"collections", "items", "games"}

// ownerAliases are the field names under which a row may carry its owner id,
// tried in order. The mapping is applied once here, at the ingestion
// boundary, instead of scattered fallbacks at each use site.
var ownerAliases = []string{"userId", "user", "userid", "user_id"}

// Items locates the item array inside a response body of unknown shape. The
// array may be the top-level value, nested under one of the conventional
// wrapper keys, or, failing those, the first object property whose value is
// an array. A body with no array anywhere yields an empty slice.
func Items(body gjson.Result) []gjson.Result {
	if body.IsArray() {
		return body.Array()
	}

	if !body.IsObject() {
		return nil
	}

	for _, key := range itemArrayKeys {
		if v := body.Get(key); v.IsArray() {
			return v.Array()
		}
	}

	var found []gjson.Result
	body.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			found = value.Array()
			return false
		}
		return true
	})
	return found
}

// OwnerID extracts a row's owner id, trying the known aliases in order. An
// alias holding an object (a populated user reference) contributes that
// object's own id. Returns "" when no alias matches.
func OwnerID(row gjson.Result) string {
	for _, alias := range ownerAliases {
		v := row.Get(alias)
		if !v.Exists() {
			continue
		}
		if v.IsObject() {
			for _, idKey := range []string{"id", "_id"} {
				if id := v.Get(idKey); id.Exists() {
					return id.String()
				}
			}
			continue
		}
		return v.String()
	}
	return ""
}

// OwnedBy filters rows down to those whose owner id matches userID. Rows
// with no recognizable owner field are dropped.
func OwnedBy(rows []gjson.Result, userID string) []gjson.Result {
	var out []gjson.Result
	for _, row := range rows {
		if OwnerID(row) == userID {
			out = append(out, row)
		}
	}
	return out
}
