package models

type UserRole string
type AuditionType string
type AuditionStatus string
type AuditionSource string
type ContactType string
type ExpenseCategory string
type InsightType string
type BookingType string
type BookingStatus string
type PaymentStatus string
type SubscriptionTier string
type SubscriptionStatus string
type EmailLogStatus string

const (
	UserRoleParent UserRole = "parent"
	UserRoleAdmin  UserRole = "admin"

	AuditionTypeTV         AuditionType = "TV"
	AuditionTypeFilm       AuditionType = "FILM"
	AuditionTypeCommercial AuditionType = "COMMERCIAL"
	AuditionTypeTheatre    AuditionType = "THEATRE"
	AuditionTypeVoiceover  AuditionType = "VOICEOVER"
	AuditionTypeOther      AuditionType = "OTHER"

	AuditionStatusPending   AuditionStatus = "PENDING"
	AuditionStatusSubmitted AuditionStatus = "SUBMITTED"
	AuditionStatusCallback  AuditionStatus = "CALLBACK"
	AuditionStatusBooked    AuditionStatus = "BOOKED"
	AuditionStatusReleased  AuditionStatus = "RELEASED"

	AuditionSourceManual       AuditionSource = "MANUAL"
	AuditionSourceEmail        AuditionSource = "EMAIL"
	AuditionSourceGoogleSheets AuditionSource = "GOOGLE_SHEETS"
	AuditionSourceAirtable     AuditionSource = "AIRTABLE"
	AuditionSourceSpreadsheet  AuditionSource = "SPREADSHEET"

	ContactTypeCastingDirector ContactType = "CASTING_DIRECTOR"
	ContactTypeAgent           ContactType = "AGENT"
	ContactTypeManager         ContactType = "MANAGER"
	ContactTypeCoach           ContactType = "COACH"
	ContactTypeOther           ContactType = "OTHER"

	ExpenseCategoryCoaching     ExpenseCategory = "COACHING"
	ExpenseCategorySelfTapeGear ExpenseCategory = "SELF_TAPE_GEAR"
	ExpenseCategoryTravel       ExpenseCategory = "TRAVEL"
	ExpenseCategoryWardrobe     ExpenseCategory = "WARDROBE"
	ExpenseCategoryHeadshots    ExpenseCategory = "HEADSHOTS"
	ExpenseCategoryMemberships  ExpenseCategory = "MEMBERSHIPS"
	ExpenseCategoryOther        ExpenseCategory = "OTHER"

	InsightTypePerformance       InsightType = "PERFORMANCE"
	InsightTypeCastingTrends     InsightType = "CASTING_TRENDS"
	InsightTypeCallbacksAnalysis InsightType = "CALLBACKS_ANALYSIS"
	InsightTypeGeneralTips       InsightType = "GENERAL_TIPS"

	BookingTypeCoachingSession   BookingType = "COACHING_SESSION"
	BookingTypeSelfTapeFeedback  BookingType = "SELF_TAPE_FEEDBACK"
	BookingTypeAuditionPrepGuide BookingType = "AUDITION_PREP_GUIDE"

	BookingStatusScheduled BookingStatus = "SCHEDULED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"

	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"

	SubscriptionTierFree           SubscriptionTier = "FREE"
	SubscriptionTierPremiumMonthly SubscriptionTier = "PREMIUM_MONTHLY"
	SubscriptionTierPremiumAnnual  SubscriptionTier = "PREMIUM_ANNUAL"

	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
	SubscriptionStatusPaused   SubscriptionStatus = "PAUSED"

	EmailLogStatusPending   EmailLogStatus = "PENDING"
	EmailLogStatusProcessed EmailLogStatus = "PROCESSED"
	EmailLogStatusFailed    EmailLogStatus = "FAILED"
)

var (
	AuditionTypes     = []AuditionType{AuditionTypeTV, AuditionTypeFilm, AuditionTypeCommercial, AuditionTypeTheatre, AuditionTypeVoiceover, AuditionTypeOther}
	AuditionStatuses  = []AuditionStatus{AuditionStatusPending, AuditionStatusSubmitted, AuditionStatusCallback, AuditionStatusBooked, AuditionStatusReleased}
	ContactTypes      = []ContactType{ContactTypeCastingDirector, ContactTypeAgent, ContactTypeManager, ContactTypeCoach, ContactTypeOther}
	ExpenseCategories = []ExpenseCategory{ExpenseCategoryCoaching, ExpenseCategorySelfTapeGear, ExpenseCategoryTravel, ExpenseCategoryWardrobe, ExpenseCategoryHeadshots, ExpenseCategoryMemberships, ExpenseCategoryOther}
	BookingTypes      = []BookingType{BookingTypeCoachingSession, BookingTypeSelfTapeFeedback, BookingTypeAuditionPrepGuide}
	BookingStatuses   = []BookingStatus{BookingStatusScheduled, BookingStatusCompleted, BookingStatusCancelled}
	SubscriptionTiers = []SubscriptionTier{SubscriptionTierFree, SubscriptionTierPremiumMonthly, SubscriptionTierPremiumAnnual}
)

func (t AuditionType) Valid() bool {
	for _, v := range AuditionTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s AuditionStatus) Valid() bool {
	for _, v := range AuditionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Active reports whether the audition is still in play (used by the upcoming tab).
func (s AuditionStatus) Active() bool {
	return s == AuditionStatusPending || s == AuditionStatusSubmitted || s == AuditionStatusCallback
}

// Closed reports whether the audition has a final outcome.
func (s AuditionStatus) Closed() bool {
	return s == AuditionStatusBooked || s == AuditionStatusReleased
}

func (t ContactType) Valid() bool {
	for _, v := range ContactTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

func (t BookingType) Valid() bool {
	for _, v := range BookingTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (t SubscriptionTier) Valid() bool {
	for _, v := range SubscriptionTiers {
		if v == t {
			return true
		}
	}
	return false
}

func (t SubscriptionTier) Paid() bool {
	return t == SubscriptionTierPremiumMonthly || t == SubscriptionTierPremiumAnnual
}
