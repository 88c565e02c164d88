package lottery_api_client

const (
	// Base URL
	DefaultBaseURL = "http://localhost:5000"

	// API Endpoints
	ResultsEndpoint  = "/api/lottery-results"
	ScheduleEndpoint = "/api/lottery-schedule"

	// Headers
	AcceptHeader    = "Accept"
	UserAgentHeader = "User-Agent"
	UserAgent       = "lotterydash/1.0"
)
