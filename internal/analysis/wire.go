package analysis

// TextRequest is the JSON body sent to every analysis endpoint
type TextRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is the optional JSON body of a failed analysis response
type ErrorResponse struct {
	Error string `json:"error"`
}

// EndpointPath returns the service path for kind, e.g. "/api/ai/summarize"
func EndpointPath(kind Kind) string {
	return "/api/ai/" + string(kind)
}
