package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	ActorHandler        *ActorHandler
	AuditionHandler     *AuditionHandler
	ExpenseHandler      *ExpenseHandler
	ContactHandler      *ContactHandler
	BookingHandler      *BookingHandler
	SubscriptionHandler *SubscriptionHandler
	EmailHandler        *EmailHandler
	ImportHandler       *ImportHandler
	AnalyticsHandler    *AnalyticsHandler
	UploadHandler       *UploadHandler
	FileHandler         *FileHandler
	AdminHandler        *AdminHandler
}
