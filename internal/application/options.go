package application

// StartOptions carries everything the composition root needs. Zero values
// fall back to environment-derived defaults.
type StartOptions struct {
	ConfigDir  string
	DBPath     string
	LocalHost  string
	LocalPort  int
	AgentWSURL string
	LogLevel   string
}
