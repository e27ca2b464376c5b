package services

import "testing"

func TestToggleCategory_LazyLoadExactlyOnce(t *testing.T) {
	doc := NewDocument(DealCategories)

	ToggleCategory(doc, "utilities")
	cat := doc.FindCategory("utilities")
	if !cat.Expanded || !cat.Loaded {
		t.Fatalf("after first expand: expanded=%v loaded=%v, want true/true", cat.Expanded, cat.Loaded)
	}
	presetCount := len(cat.Items)
	if presetCount != len(PresetsFor("utilities")) {
		t.Fatalf("materialized %d items, want %d", presetCount, len(PresetsFor("utilities")))
	}

	ToggleCategory(doc, "utilities") // collapse
	ToggleCategory(doc, "utilities") // re-expand
	if len(cat.Items) != presetCount {
		t.Errorf("re-expanding duplicated presets: %d items, want %d", len(cat.Items), presetCount)
	}
}

func TestToggleCategory_PresetIDsAreSequential(t *testing.T) {
	doc := NewDocument(DealCategories)
	start := doc.NextID

	ToggleCategory(doc, "site-prep")

	cat := doc.FindCategory("site-prep")
	for i, item := range cat.Items {
		if item.ID != start+i {
			t.Errorf("preset %d has id %d, want %d", i, item.ID, start+i)
		}
	}
	if doc.NextID != start+len(cat.Items) {
		t.Errorf("nextId = %d, want %d", doc.NextID, start+len(cat.Items))
	}
}

func TestToggleCategory_UnknownCategoryIsNoOp(t *testing.T) {
	doc := NewDocument(DealCategories)
	before := doc.NextID
	ToggleCategory(doc, "does-not-exist")
	if doc.NextID != before {
		t.Errorf("nextId changed to %d on unknown category", doc.NextID)
	}
}

func TestIDMonotonicity(t *testing.T) {
	doc := NewDocument(DealCategories)
	seen := map[int]bool{}

	record := func(id int) {
		t.Helper()
		if seen[id] {
			t.Fatalf("id %d reused", id)
		}
		seen[id] = true
	}

	ToggleCategory(doc, "land-purchase")
	for _, item := range doc.FindCategory("land-purchase").Items {
		record(item.ID)
	}

	a := AddItem(doc, "land-purchase")
	record(a.ID)

	DeleteItem(doc, "land-purchase", a.ID)

	// A deleted id never comes back.
	b := AddItem(doc, "land-purchase")
	record(b.ID)
	if b.ID <= a.ID {
		t.Errorf("new id %d not greater than deleted id %d", b.ID, a.ID)
	}

	ToggleCategory(doc, "utilities")
	for _, item := range doc.FindCategory("utilities").Items {
		record(item.ID)
		if item.ID <= b.ID {
			t.Errorf("preset id %d not greater than earlier id %d", item.ID, b.ID)
		}
	}
}

func TestAddAndDeleteItem(t *testing.T) {
	doc := NewDocument(DealCategories)

	if item := AddItem(doc, "nope"); item != nil {
		t.Fatal("AddItem on unknown category should return nil")
	}

	item := AddItem(doc, "fees")
	if item == nil {
		t.Fatal("AddItem returned nil")
	}
	if item.Description != "" || item.Cost != 0 || item.Price.Value != 0 {
		t.Errorf("new item not blank: %+v", item)
	}

	if !DeleteItem(doc, "fees", item.ID) {
		t.Fatal("DeleteItem did not find the item")
	}
	if DeleteItem(doc, "fees", item.ID) {
		t.Error("DeleteItem found an already-deleted item")
	}
	if len(doc.FindCategory("fees").Items) != 0 {
		t.Errorf("category still has %d items", len(doc.FindCategory("fees").Items))
	}
}

// Mirrors the end-to-end editing flow: expand, add, edit, total.
func TestBuilderScenario(t *testing.T) {
	doc := NewDocument(DealCategories)
	startID := doc.NextID

	ToggleCategory(doc, "land-purchase")
	cat := doc.FindCategory("land-purchase")
	presetCount := len(cat.Items)
	if presetCount == 0 {
		t.Fatal("land-purchase should have preset items")
	}
	if cat.Items[0].ID != startID {
		t.Errorf("first preset id = %d, want %d", cat.Items[0].ID, startID)
	}

	added := AddItem(doc, "land-purchase")
	if added.ID != startID+presetCount {
		t.Errorf("added item id = %d, want %d", added.ID, startID+presetCount)
	}

	UpdateItemField(doc, "land-purchase", added.ID, FieldCost, "1000")
	UpdateItemField(doc, "land-purchase", added.ID, FieldMarkup, "200")
	if added.Price.Value != 1200 {
		t.Errorf("price = %v, want 1200", added.Price.Value)
	}

	var presetTotal float64
	for _, item := range cat.Items[:presetCount] {
		presetTotal += item.Price.Value
	}
	if got := CalcCategoryTotal(cat); got != presetTotal+1200 {
		t.Errorf("category total = %v, want %v", got, presetTotal+1200)
	}
}
