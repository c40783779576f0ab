package merge

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/elcukro/home-budget-sub000/internal/catalog"
	"github.com/elcukro/home-budget-sub000/internal/model"
)

// Record sections addressable by DecodeSection.
const (
	SectionLife              = "life"
	SectionIncome            = "income"
	SectionExpenses          = "expenses"
	SectionIrregularExpenses = "irregularExpenses"
	SectionLiabilities       = "liabilities"
	SectionAssets            = "assets"
	SectionGoals             = "goals"
)

var Sections = []string{
	SectionLife, SectionIncome, SectionExpenses, SectionIrregularExpenses,
	SectionLiabilities, SectionAssets, SectionGoals,
}

var (
	ErrUnknownSection = errors.New("unknown record section")
	ErrNotObject      = errors.New("record must be a JSON object")
)

// Decode turns an untrusted JSON document (local draft, server snapshot or
// client payload) into a record. Every field is coerced; unknown keys are
// ignored. An empty or null document yields the zero record.
func Decode(raw []byte) (model.OnboardingRecord, error) {
	var rec model.OnboardingRecord
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return rec, nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return rec, ErrNotObject
	}
	for _, section := range Sections {
		if v, ok := m[section]; ok {
			decodeSection(&rec, section, v)
		}
	}
	backfillIDs(&rec)
	return rec, nil
}

// DecodeSection replaces one section of rec with the decoded payload.
func DecodeSection(rec *model.OnboardingRecord, section string, raw []byte) error {
	if !catalog.OneOf(section, Sections) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	var v any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %s: %w", section, err)
		}
	}
	decodeSection(rec, section, v)
	backfillIDs(rec)
	return nil
}

func decodeSection(rec *model.OnboardingRecord, section string, v any) {
	switch section {
	case SectionLife:
		rec.Life = decodeLife(object(v))
	case SectionIncome:
		rec.Income = decodeIncome(object(v))
	case SectionExpenses:
		rec.Expenses = decodeExpenses(v)
	case SectionIrregularExpenses:
		rec.IrregularExpenses = decodeItems(v)
	case SectionLiabilities:
		rec.Liabilities = decodeLiabilities(v)
	case SectionAssets:
		rec.Assets = decodeAssets(object(v))
	case SectionGoals:
		rec.Goals = decodeGoals(v)
	}
}

func decodeLife(m map[string]any) model.LifeData {
	return model.LifeData{
		MaritalStatus:              enum(m["maritalStatus"], catalog.MaritalStatuses),
		IncludePartnerFinances:     boolean(m["includePartnerFinances"]),
		ChildrenCount:              count(m["childrenCount"]),
		ChildrenAgeRange:           enum(m["childrenAgeRange"], catalog.ChildrenAgeRanges),
		HousingType:                enum(m["housingType"], catalog.HousingTypes),
		HasMortgage:                boolean(m["hasMortgage"]),
		EmploymentStatus:           enum(m["employmentStatus"], catalog.EmploymentStatuses),
		TaxForm:                    enum(m["taxForm"], catalog.TaxForms),
		HouseholdCost:              amount(m["householdCost"]),
		BirthYear:                  count(m["birthYear"]),
		UseAuthorsCosts:            boolean(m["useAuthorsCosts"]),
		RetirementPlanEnrolled:     boolean(m["retirementPlanEnrolled"]),
		RetirementPlanEmployeeRate: amount(m["retirementPlanEmployeeRate"]),
		RetirementPlanEmployerRate: amount(m["retirementPlanEmployerRate"]),
	}
}

func decodeIncome(m map[string]any) model.IncomeData {
	out := model.IncomeData{
		SalaryNet:             amount(m["salaryNet"]),
		IrregularIncomeAnnual: amount(m["irregularIncomeAnnual"]),
	}
	sources := object(m["additionalSources"])
	out.AdditionalSources.Each(func(key string, src *model.IncomeSource) {
		s := object(sources[key])
		src.Enabled = boolean(s["enabled"])
		src.Amount = amount(s["amount"])
	})
	return out
}

func decodeExpenses(v any) model.ExpenseGroups {
	m := object(v)
	if m == nil {
		return nil
	}
	if _, legacy := m[catalog.LegacyMarker]; legacy {
		return decodeLegacyExpenses(m)
	}

	out := model.ExpenseGroups{}
	for _, key := range sortedKeys(m) {
		group := key
		if !catalog.IsGroup(group) {
			group = catalog.GroupOther
		}
		out[group] = append(out[group], decodeItems(m[key])...)
	}
	return out
}

// decodeLegacyExpenses converts the old flat layout
// ({"housing": 2000, "food": 800, ...}) into template items.
func decodeLegacyExpenses(m map[string]any) model.ExpenseGroups {
	out := model.ExpenseGroups{}
	for _, field := range sortedKeys(m) {
		t, ok := catalog.LegacyTemplate(field)
		if !ok {
			continue
		}
		item := t.Item()
		item.Amount = amount(m[field])
		out[t.Group] = append(out[t.Group], item)
	}
	return out
}

func decodeItems(v any) []model.ExpenseItem {
	var out []model.ExpenseItem
	for _, e := range list(v) {
		m := object(e)
		if m == nil {
			continue
		}
		out = append(out, model.ExpenseItem{
			ID:         str(m["id"]),
			TemplateID: str(m["templateId"]),
			Name:       str(m["name"]),
			Amount:     amount(m["amount"]),
			Category:   str(m["category"]),
			IsCustom:   boolean(m["isCustom"]),
			Month:      month(m["month"]),
		})
	}
	return out
}

func decodeLiabilities(v any) []model.Liability {
	var out []model.Liability
	for _, e := range list(v) {
		m := object(e)
		if m == nil {
			continue
		}
		kind := enum(m["type"], catalog.LiabilityTypes)
		if kind == "" {
			kind = "other"
		}
		out = append(out, model.Liability{
			ID:              str(m["id"]),
			Type:            kind,
			Description:     str(m["description"]),
			RemainingAmount: amount(m["remainingAmount"]),
			MonthlyPayment:  amount(m["monthlyPayment"]),
			InterestRate:    optionalAmount(m["interestRate"]),
			TermMonths:      count(m["termMonths"]),
			StartDate:       str(m["startDate"]),
			EndDate:         str(m["endDate"]),
			RepaymentType:   enum(m["repaymentType"], catalog.RepaymentTypes),
			PropertyValue:   amount(m["propertyValue"]),
		})
	}
	return out
}

func decodeAssets(m map[string]any) model.AssetsData {
	inv := object(m["investments"])
	var kinds []string
	for _, c := range list(inv["categories"]) {
		if k := enum(c, catalog.InvestmentKinds); k != "" && !catalog.OneOf(k, kinds) {
			kinds = append(kinds, k)
		}
	}
	ret := object(m["retirement"])
	return model.AssetsData{
		Savings:             amount(m["savings"]),
		EmergencyFundMonths: count(m["emergencyFundMonths"]),
		Investments: model.Investments{
			Categories: kinds,
			TotalValue: amount(inv["totalValue"]),
		},
		Properties: decodeAssetItems(m["properties"]),
		Vehicles:   decodeAssetItems(m["vehicles"]),
		Retirement: model.RetirementAccounts{
			Individual:    amount(ret["individual"]),
			TaxAdvantaged: amount(ret["taxAdvantaged"]),
			Employer:      amount(ret["employer"]),
		},
	}
}

func decodeAssetItems(v any) []model.AssetItem {
	var out []model.AssetItem
	for _, e := range list(v) {
		m := object(e)
		if m == nil {
			continue
		}
		out = append(out, model.AssetItem{
			ID:    str(m["id"]),
			Name:  str(m["name"]),
			Value: amount(m["value"]),
		})
	}
	return out
}

func decodeGoals(v any) []model.Goal {
	var out []model.Goal
	for _, e := range list(v) {
		m := object(e)
		if m == nil {
			continue
		}
		out = append(out, model.Goal{
			ID:           str(m["id"]),
			Name:         str(m["name"]),
			Type:         enum(m["type"], catalog.GoalTypes),
			TargetAmount: amount(m["targetAmount"]),
			TargetDate:   str(m["targetDate"]),
			Priority:     integer(m["priority"]),
		})
	}
	return out
}
