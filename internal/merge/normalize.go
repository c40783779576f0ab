package merge

import (
	"github.com/google/uuid"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

type lookupFunc func(id string) (catalog.Template, bool)

// Normalize brings a record into canonical shape: every catalog template
// present in its group, custom items after templates, ids backfilled,
// collections non-nil and the cross-field invariants applied.
func Normalize(rec *model.OnboardingRecord) {
	rec.Expenses = normalizeGroups(rec.Expenses)
	rec.IrregularExpenses = normalizeList(rec.IrregularExpenses, catalog.IrregularTemplates(), catalog.IrregularTemplate)
	backfillIDs(rec)
	if rec.Liabilities == nil {
		rec.Liabilities = []model.Liability{}
	}
	if rec.Goals == nil {
		rec.Goals = []model.Goal{}
	}
	if rec.Assets.Properties == nil {
		rec.Assets.Properties = []model.AssetItem{}
	}
	if rec.Assets.Vehicles == nil {
		rec.Assets.Vehicles = []model.AssetItem{}
	}
	if rec.Assets.Investments.Categories == nil {
		rec.Assets.Investments.Categories = []string{}
	}
	Enforce(rec)
}

// normalizeGroups moves template items into their catalog group, sends
// custom items of unknown groups to "other" and normalizes each group.
func normalizeGroups(in model.ExpenseGroups) model.ExpenseGroups {
	buckets := make(map[string][]model.ExpenseItem, len(in))
	place := func(key string) {
		for _, it := range in[key] {
			group := key
			if t, ok := catalog.ExpenseTemplate(templateOf(it, catalog.ExpenseTemplate)); ok {
				group = t.Group
			} else if !catalog.IsGroup(group) {
				group = catalog.GroupOther
			}
			buckets[group] = append(buckets[group], it)
		}
	}
	for _, g := range catalog.Groups() {
		place(g)
	}
	for _, key := range sortedGroupKeys(in) {
		if !catalog.IsGroup(key) {
			place(key)
		}
	}

	out := make(model.ExpenseGroups, len(catalog.Groups()))
	for _, g := range catalog.Groups() {
		out[g] = normalizeList(buckets[g], catalog.GroupTemplates(g), catalog.ExpenseTemplate)
	}
	return out
}

// normalizeList returns templates in catalog order, each carrying the
// source amount if present, followed by the custom items in source order.
func normalizeList(items []model.ExpenseItem, templates []catalog.Template, lookup lookupFunc) []model.ExpenseItem {
	fromTemplate := make(map[string]model.ExpenseItem)
	var custom []model.ExpenseItem
	seen := make(map[string]bool)

	for _, it := range items {
		if id := templateOf(it, lookup); id != "" {
			if _, dup := fromTemplate[id]; !dup {
				fromTemplate[id] = it
			}
			continue
		}
		it.TemplateID = ""
		it.IsCustom = true
		it.Amount = Sanitize(it.Amount)
		if !catalog.IsCategory(it.Category) {
			it.Category = "other"
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		custom = append(custom, it)
	}

	out := make([]model.ExpenseItem, 0, len(templates)+len(custom))
	for _, t := range templates {
		item := t.Item()
		if src, ok := fromTemplate[t.ID]; ok {
			if src.ID != "" {
				item.ID = src.ID
			}
			if src.Name != "" {
				item.Name = src.Name
			}
			if catalog.IsCategory(src.Category) {
				item.Category = src.Category
			}
			if src.Month >= 1 && src.Month <= 12 {
				item.Month = src.Month
			}
			item.Amount = Sanitize(src.Amount)
		}
		out = append(out, item)
	}
	return append(out, custom...)
}

// templateOf resolves the catalog template an item was created from. Items
// without a template id still count as template items when their own id is a
// catalog id and they are not flagged custom.
func templateOf(it model.ExpenseItem, lookup lookupFunc) string {
	if it.TemplateID != "" {
		if _, ok := lookup(it.TemplateID); ok {
			return it.TemplateID
		}
		return ""
	}
	if !it.IsCustom {
		if _, ok := lookup(it.ID); ok {
			return it.ID
		}
	}
	return ""
}

func sortedGroupKeys(g model.ExpenseGroups) []string {
	m := make(map[string]any, len(g))
	for k := range g {
		m[k] = nil
	}
	return sortedKeys(m)
}

func backfillIDs(rec *model.OnboardingRecord) {
	for g, items := range rec.Expenses {
		rec.Expenses[g] = backfillItems(items)
	}
	rec.IrregularExpenses = backfillItems(rec.IrregularExpenses)
	for i := range rec.Liabilities {
		if rec.Liabilities[i].ID == "" {
			rec.Liabilities[i].ID = uuid.NewString()
		}
	}
	for i := range rec.Assets.Properties {
		if rec.Assets.Properties[i].ID == "" {
			rec.Assets.Properties[i].ID = uuid.NewString()
		}
	}
	for i := range rec.Assets.Vehicles {
		if rec.Assets.Vehicles[i].ID == "" {
			rec.Assets.Vehicles[i].ID = uuid.NewString()
		}
	}
	for i := range rec.Goals {
		if rec.Goals[i].ID == "" {
			rec.Goals[i].ID = uuid.NewString()
		}
	}
}

func backfillItems(items []model.ExpenseItem) []model.ExpenseItem {
	for i := range items {
		if items[i].ID != "" {
			continue
		}
		if items[i].TemplateID != "" {
			items[i].ID = items[i].TemplateID
		} else {
			items[i].ID = uuid.NewString()
		}
	}
	return items
}
