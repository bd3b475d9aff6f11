package contextkeys

type contextKey string

const (
	// DBContextKey holds the *gorm.DB (pool or transaction) used by a request.
	DBContextKey = contextKey("db")

	// UserIDKey and RoleKey are set by the auth middleware on gin.Context.
	UserIDKey = "userID"
	RoleKey   = "role"
)
