package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Budget data
	BudgetSource BudgetSource

	// Cache
	BudgetStore  BudgetStore
	CacheMetrics CacheMetrics

	// Background tasks
	DeadLetters DeadLetterLog

	// Infrastructure
	Logger   Logger
	Database interface{}
}
