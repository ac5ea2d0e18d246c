package http

// DetailBody is the error envelope: a string for server errors, a list of
// ValidationError for rejected requests.
type DetailBody struct {
	Detail interface{} `json:"detail"`
}

// ValidationError represents one rejected field of a request body.
type ValidationError struct {
	Type string   `json:"type" example:"missing"`
	Loc  []string `json:"loc" example:"body,Category"`
	Msg  string   `json:"msg" example:"Field required"`
}

// ServiceInfo describes the running API.
type ServiceInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}
