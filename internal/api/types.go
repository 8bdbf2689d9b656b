package api

type downloadRequest struct {
	URL string `json:"url"`
}

type storiesRequest struct {
	Username string `json:"username"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type stalkRequest struct {
	Username string `json:"username"`
}

// successEnvelope wraps every 2xx payload.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope wraps every non-2xx payload with a human-readable message.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
