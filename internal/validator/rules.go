package validator

import (
	"log"
	"strings"

	"auditionhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds one tag per enum in models/statuses.go.
// Empty values pass; use "required" to demand a value.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-audition-type", enumRule(func(s string) bool { return models.AuditionType(s).Valid() }))
	mustRegister("is-audition-status", enumRule(func(s string) bool { return models.AuditionStatus(s).Valid() }))
	mustRegister("is-contact-type", enumRule(func(s string) bool { return models.ContactType(s).Valid() }))
	mustRegister("is-expense-category", enumRule(func(s string) bool { return models.ExpenseCategory(s).Valid() }))
	mustRegister("is-booking-type", enumRule(func(s string) bool { return models.BookingType(s).Valid() }))
	mustRegister("is-booking-status", enumRule(func(s string) bool { return models.BookingStatus(s).Valid() }))
	mustRegister("is-subscription-tier", enumRule(func(s string) bool { return models.SubscriptionTier(s).Valid() }))
	mustRegister("is-filter-field", enumRule(func(s string) bool {
		switch strings.ToLower(s) {
		case "from", "to", "subject":
			return true
		}
		return false
	}))
}

func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}

func auditionTypeNames() []string {
	out := make([]string, 0, len(models.AuditionTypes))
	for _, v := range models.AuditionTypes {
		out = append(out, string(v))
	}
	return out
}

func auditionStatusNames() []string {
	out := make([]string, 0, len(models.AuditionStatuses))
	for _, v := range models.AuditionStatuses {
		out = append(out, string(v))
	}
	return out
}

func contactTypeNames() []string {
	out := make([]string, 0, len(models.ContactTypes))
	for _, v := range models.ContactTypes {
		out = append(out, string(v))
	}
	return out
}

func expenseCategoryNames() []string {
	out := make([]string, 0, len(models.ExpenseCategories))
	for _, v := range models.ExpenseCategories {
		out = append(out, string(v))
	}
	return out
}

func bookingTypeNames() []string {
	out := make([]string, 0, len(models.BookingTypes))
	for _, v := range models.BookingTypes {
		out = append(out, string(v))
	}
	return out
}

func bookingStatusNames() []string {
	out := make([]string, 0, len(models.BookingStatuses))
	for _, v := range models.BookingStatuses {
		out = append(out, string(v))
	}
	return out
}

func subscriptionTierNames() []string {
	out := make([]string, 0, len(models.SubscriptionTiers))
	for _, v := range models.SubscriptionTiers {
		out = append(out, string(v))
	}
	return out
}
