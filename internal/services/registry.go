package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	ActorService        ActorService
	AuditionService     AuditionService
	ExpenseService      ExpenseService
	ContactService      ContactService
	BookingService      BookingService
	SubscriptionService SubscriptionService
	EmailService        EmailService
	ImportService       ImportService
	AnalyticsService    AnalyticsService
	UploadService       UploadService
	AdminService        AdminService
}
