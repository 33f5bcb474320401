package cache

// Centralized cache key builders so every consumer agrees on naming.
// The store applies the configured namespace prefix on top of these.

func UserByProvider(providerID string) string {
	return "user:provider:" + providerID
}

func ResumeByID(resumeID string) string {
	return "resume:id:" + resumeID
}
