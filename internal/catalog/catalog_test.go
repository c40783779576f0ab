package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesAreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, tpl := range expenseTemplates {
		assert.False(t, seen[tpl.ID], "duplicate template %s", tpl.ID)
		seen[tpl.ID] = true
		assert.True(t, IsGroup(tpl.Group), tpl.ID)
		assert.True(t, IsCategory(tpl.Category), tpl.ID)
	}
	for _, tpl := range irregularTemplates {
		assert.False(t, seen[tpl.ID], "duplicate template %s", tpl.ID)
		seen[tpl.ID] = true
		assert.True(t, IsCategory(tpl.Category), tpl.ID)
		assert.GreaterOrEqual(t, tpl.Month, 0)
		assert.LessOrEqual(t, tpl.Month, 12)
	}
	for field := range legacyFields {
		_, ok := LegacyTemplate(field)
		assert.True(t, ok, field)
	}
}

func TestDefaultExpenses(t *testing.T) {
	d := DefaultExpenses()
	require.Len(t, d, len(groups))
	for _, g := range Groups() {
		assert.NotNil(t, d[g], g)
		for _, it := range d[g] {
			assert.Equal(t, it.ID, it.TemplateID)
			assert.Zero(t, it.Amount)
		}
	}
	assert.Len(t, d[GroupHome], 4)
	assert.Equal(t, "Rent", d[GroupHome][0].Name)
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := Groups()
	g[0] = "mutated"
	assert.Equal(t, GroupHome, Groups()[0])

	irr := IrregularTemplates()
	irr[0].Name = "mutated"
	assert.Equal(t, "Car insurance", IrregularTemplates()[0].Name)

	d := DefaultExpenses()
	d[GroupFood][0].Amount = 900
	assert.Zero(t, DefaultExpenses()[GroupFood][0].Amount)
}

func TestLookups(t *testing.T) {
	tpl, ok := LegacyTemplate("transportation")
	require.True(t, ok)
	assert.Equal(t, "transport-fuel", tpl.ID)

	_, ok = LegacyTemplate("groceries")
	assert.False(t, ok)

	tpl, ok = IrregularTemplate("irregular-gifts")
	require.True(t, ok)
	assert.Equal(t, 12, tpl.Month)

	assert.Equal(t, 1600.0, ChildBenefitLimit(2))
	assert.Zero(t, ChildBenefitLimit(-3))
	assert.Positive(t, ChildBenefitLimit(math.MaxInt64/100))

	assert.True(t, OneOf("leasing", LiabilityTypes))
	assert.False(t, OneOf("Leasing", LiabilityTypes))
	assert.True(t, RequiresTaxForm("self_employed"))
	assert.False(t, RequiresTaxForm("employee"))
	assert.True(t, IsRevolving(LiabilityOverdraft))
	assert.False(t, IsRevolving(LiabilityMortgage))
}
