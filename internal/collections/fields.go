package collections

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/resolver"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// Backends have renamed item fields across versions. Aliases are applied
// once here, at the ingestion boundary; everything past this file speaks
// canonical names only.
var (
	idAliases       = []string{"id", "_id"}
	titleAliases    = []string{"gameTitle", "game_title", "title", "name"}
	platformAliases = []string{"platform", "console"}
	looseAliases    = []string{"loosePrice", "loose_price", "loose"}
	cibAliases      = []string{"cibPrice", "completePrice", "cib_price", "complete_price", "cib"}
	newAliases      = []string{"newPrice", "new_price", "new"}
	gradedAliases   = []string{"gradedPrice", "graded_price", "graded"}
	boxOnlyAliases  = []string{"boxOnlyPrice", "boxPrice", "box_only_price", "box_price", "box_only"}
	purchaseAliases = []string{"purchasePrice", "purchase_price"}
)

func firstString(row gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := row.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func firstPrice(row gjson.Result, keys []string) *float64 {
	for _, key := range keys {
		v := row.Get(key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		f := v.Float()
		return &f
	}
	return nil
}

// decodeItem maps one backend row onto the canonical item shape.
func decodeItem(row gjson.Result) domain.CollectionItem {
	item := domain.CollectionItem{
		ID:           firstString(row, idAliases...),
		GameTitle:    firstString(row, titleAliases...),
		Platform:     firstString(row, platformAliases...),
		Condition:    row.Get("condition").String(),
		LoosePrice:   firstPrice(row, looseAliases),
		CIBPrice:     firstPrice(row, cibAliases),
		NewPrice:     firstPrice(row, newAliases),
		GradedPrice:  firstPrice(row, gradedAliases),
		BoxOnlyPrice: firstPrice(row, boxOnlyAliases),
		PricingID:    firstString(row, "pricingId", "pricing_id"),
		FolderID:     firstString(row, "folderId", "folder_id", "folder"),
		Notes:        row.Get("notes").String(),
		IsWishlist:   row.Get("isWishlist").Bool() || row.Get("wishlist").Bool(),
		Completion:   domain.CompletionStatus(firstString(row, "completionStatus", "completion_status", "completion")),
		UserID:       resolver.OwnerID(row),
	}

	item.PurchasePrice = firstPrice(row, purchaseAliases)
	if v := firstString(row, "createdAt", "created_at"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			item.CreatedAt = ts
		}
	}

	row.Get("priceHistory").ForEach(func(_, snap gjson.Result) bool {
		item.PriceHistory = append(item.PriceHistory, decodeSnapshot(snap))
		return true
	})
	if len(item.PriceHistory) == 0 {
		row.Get("price_history").ForEach(func(_, snap gjson.Result) bool {
			item.PriceHistory = append(item.PriceHistory, decodeSnapshot(snap))
			return true
		})
	}

	return item
}

func decodeSnapshot(row gjson.Result) domain.PriceSnapshot {
	snap := domain.PriceSnapshot{
		LoosePrice:   firstPrice(row, looseAliases),
		CIBPrice:     firstPrice(row, cibAliases),
		NewPrice:     firstPrice(row, newAliases),
		GradedPrice:  firstPrice(row, gradedAliases),
		BoxOnlyPrice: firstPrice(row, boxOnlyAliases),
	}
	if v := row.Get("date").String(); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			snap.Date = ts
		} else if ts, err := time.Parse("2006-01-02", v); err == nil {
			snap.Date = ts
		}
	}
	return snap
}

func decodeFolder(row gjson.Result) domain.Folder {
	return domain.Folder{
		ID:          firstString(row, idAliases...),
		Name:        row.Get("name").String(),
		Description: row.Get("description").String(),
		Color:       row.Get("color").String(),
		UserID:      resolver.OwnerID(row),
	}
}

// encodeItem builds the write payload. Canonical names are authoritative;
// the legacy "completePrice" and "boxPrice" names are sent alongside so
// older backends keep accepting writes.
func encodeItem(item domain.CollectionItem) map[string]any {
	payload := map[string]any{
		"gameTitle":  item.GameTitle,
		"platform":   item.Platform,
		"isWishlist": item.IsWishlist,
		"userId":     item.UserID,
	}
	if item.ID != "" {
		payload["id"] = item.ID
	}
	if item.Condition != "" {
		payload["condition"] = item.Condition
	}
	if item.PurchasePrice != nil {
		payload["purchasePrice"] = *item.PurchasePrice
	}
	if item.LoosePrice != nil {
		payload["loosePrice"] = *item.LoosePrice
	}
	if item.CIBPrice != nil {
		payload["cibPrice"] = *item.CIBPrice
		payload["completePrice"] = *item.CIBPrice
	}
	if item.NewPrice != nil {
		payload["newPrice"] = *item.NewPrice
	}
	if item.GradedPrice != nil {
		payload["gradedPrice"] = *item.GradedPrice
	}
	if item.BoxOnlyPrice != nil {
		payload["boxOnlyPrice"] = *item.BoxOnlyPrice
		payload["boxPrice"] = *item.BoxOnlyPrice
	}
	if item.PricingID != "" {
		payload["pricingId"] = item.PricingID
	}
	// Always present, even when empty: merge-semantics backends would
	// otherwise keep the old folder on a clear.
	payload["folderId"] = item.FolderID
	if item.Notes != "" {
		payload["notes"] = item.Notes
	}
	if item.Completion != "" {
		payload["completionStatus"] = string(item.Completion)
	}
	if len(item.PriceHistory) > 0 {
		payload["priceHistory"] = item.PriceHistory
	}
	return payload
}
