package submit

import (
	"context"

	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/model"
)

// syncSettings copies the tax profile from the record into the user's
// settings. Failures are logged and never fail the submission.
func (s *Submitter) syncSettings(ctx context.Context, token string, rec model.OnboardingRecord) {
	settings, err := s.api.GetSettings(ctx, token)
	if err != nil {
		s.logger.Warn("failed to read settings", zap.Error(err))
		return
	}
	ApplyTaxProfile(settings, rec.Life)
	if err := s.api.UpdateSettings(ctx, token, settings); err != nil {
		s.logger.Warn("failed to update settings", zap.Error(err))
	}
}

// ApplyTaxProfile writes the tax-related life fields into a settings
// document, leaving other fields untouched.
func ApplyTaxProfile(settings map[string]any, life model.LifeData) {
	if settings == nil {
		return
	}
	if life.EmploymentStatus != "" {
		settings["employment_status"] = life.EmploymentStatus
	}
	if life.TaxForm != "" {
		settings["tax_form"] = life.TaxForm
	}
	if life.BirthYear > 0 {
		settings["birth_year"] = life.BirthYear
	}
	settings["use_authors_costs"] = life.UseAuthorsCosts
	settings["retirement_plan_enrolled"] = life.RetirementPlanEnrolled
	if life.RetirementPlanEnrolled {
		settings["retirement_plan_employee_rate"] = life.RetirementPlanEmployeeRate
		settings["retirement_plan_employer_rate"] = life.RetirementPlanEmployerRate
	}
	settings["children_count"] = life.ChildrenCount
}
