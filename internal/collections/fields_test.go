package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func TestDecodeItemLegacyFieldNames(t *testing.T) {
	t.Parallel()

	row := gjson.Parse(`{
		"_id": "abc",
		"title": "Panzer Dragoon",
		"console": "dreamcast",
		"loose_price": 55.0,
		"completePrice": 140.0,
		"purchase_price": 35.0,
		"boxPrice": 20.0,
		"folder": "f1",
		"wishlist": true,
		"user": {"_id": "u9"},
		"price_history": [{"date": "2026-01-15", "completePrice": 120.0}]
	}`)

	item := decodeItem(row)

	assert.Equal(t, "abc", item.ID)
	assert.Equal(t, "Panzer Dragoon", item.GameTitle)
	assert.Equal(t, "dreamcast", item.Platform)
	require.NotNil(t, item.LoosePrice)
	assert.Equal(t, 55.0, *item.LoosePrice)
	require.NotNil(t, item.CIBPrice)
	assert.Equal(t, 140.0, *item.CIBPrice, "completePrice maps to the CIB category")
	require.NotNil(t, item.BoxOnlyPrice)
	assert.Equal(t, 20.0, *item.BoxOnlyPrice, "boxPrice maps to the box-only category")
	require.NotNil(t, item.PurchasePrice)
	assert.Equal(t, 35.0, *item.PurchasePrice)
	assert.Equal(t, "f1", item.FolderID)
	assert.True(t, item.IsWishlist)
	assert.Equal(t, "u9", item.UserID, "embedded owner objects yield their id")

	require.Len(t, item.PriceHistory, 1)
	assert.Equal(t, "2026-01-15", item.PriceHistory[0].Date.Format("2006-01-02"))
	require.NotNil(t, item.PriceHistory[0].CIBPrice)
	assert.Equal(t, 120.0, *item.PriceHistory[0].CIBPrice)
}

func TestDecodeItemCanonicalNamesWinOverAliases(t *testing.T) {
	t.Parallel()

	row := gjson.Parse(`{"id":"1","gameTitle":"Okami","title":"ignored","cibPrice":30.0,"completePrice":99.0}`)
	item := decodeItem(row)

	assert.Equal(t, "Okami", item.GameTitle)
	require.NotNil(t, item.CIBPrice)
	assert.Equal(t, 30.0, *item.CIBPrice)
}

func TestEncodeItemEmitsCompatAliases(t *testing.T) {
	t.Parallel()

	cib, box := 45.0, 12.0
	payload := encodeItem(domain.CollectionItem{
		ID:           "1",
		GameTitle:    "Okami",
		Platform:     "ps2",
		CIBPrice:     &cib,
		BoxOnlyPrice: &box,
		UserID:       "u1",
	})

	assert.Equal(t, 45.0, payload["cibPrice"])
	assert.Equal(t, 45.0, payload["completePrice"])
	assert.Equal(t, 12.0, payload["boxOnlyPrice"])
	assert.Equal(t, 12.0, payload["boxPrice"])
	assert.NotContains(t, payload, "loosePrice", "absent prices are omitted")
}

func TestEncodeItemAlwaysCarriesFolderKey(t *testing.T) {
	t.Parallel()

	payload := encodeItem(domain.CollectionItem{ID: "1", GameTitle: "Okami", UserID: "u1"})
	folder, present := payload["folderId"]
	require.True(t, present, "an empty folder must still be expressed")
	assert.Equal(t, "", folder)

	payload = encodeItem(domain.CollectionItem{ID: "1", GameTitle: "Okami", FolderID: "f1", UserID: "u1"})
	assert.Equal(t, "f1", payload["folderId"])
}

func TestDecodeFolder(t *testing.T) {
	t.Parallel()

	folder := decodeFolder(gjson.Parse(`{"_id":"f1","name":"RPGs","color":"#aa33ff","userId":"u1"}`))
	assert.Equal(t, domain.Folder{ID: "f1", Name: "RPGs", Color: "#aa33ff", UserID: "u1"}, folder)
}
