package services

// ToggleCategory flips a category's expansion state. The first transition
// to expanded materializes the category's preset starter items, each with a
// freshly allocated id, in catalog order. This happens exactly once per
// category per document; later toggles only flip the flag.
func ToggleCategory(doc *Document, categoryID string) {
	cat := doc.FindCategory(categoryID)
	if cat == nil {
		return
	}
	cat.Expanded = !cat.Expanded
	if !cat.Expanded || cat.Loaded {
		return
	}
	for _, preset := range PresetsFor(cat.ID) {
		cat.Items = append(cat.Items, &LineItem{
			ID:          doc.AllocateID(),
			Description: preset.Description,
			Cost:        preset.Cost,
			Markup:      preset.Markup,
			Price:       NumericPrice(preset.Cost + preset.Markup),
			Notes:       preset.Notes,
		})
	}
	cat.Loaded = true
}

// AddItem appends a blank line item to the category and returns it, or nil
// if the category does not exist.
func AddItem(doc *Document, categoryID string) *LineItem {
	cat := doc.FindCategory(categoryID)
	if cat == nil {
		return nil
	}
	item := &LineItem{ID: doc.AllocateID()}
	cat.Items = append(cat.Items, item)
	return item
}

// DeleteItem removes the item from the category and reports whether it was
// found. Other items' already-evaluated formula results are left alone; a
// later recompute pass is what reflects the removal.
func DeleteItem(doc *Document, categoryID string, itemID int) bool {
	cat := doc.FindCategory(categoryID)
	if cat == nil {
		return false
	}
	for i, item := range cat.Items {
		if item.ID == itemID {
			cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
			return true
		}
	}
	return false
}
