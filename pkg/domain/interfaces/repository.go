package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Message() MessageRepository

	// Close releases backend resources. Safe to call on all backends.
	Close() error
}
