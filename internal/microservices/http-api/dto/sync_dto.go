package dto

import "time"

// MutationResponse wraps the stored record. Synced is false when the change
// was only written locally and queued for the next connection.
type MutationResponse struct {
	Data   any  `json:"data,omitempty"`
	Synced bool `json:"synced"`
}

// ListResponse: list endpoints
type ListResponse struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

// EndpointRequest: payload to point the sync client at another server
type EndpointRequest struct {
	Host string `json:"host" binding:"required"`
	Port int    `json:"port" binding:"required,min=1,max=65535"`
}

// EndpointResponse: the endpoint in use and whether the switch connected
type EndpointResponse struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Connected bool   `json:"connected"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusEventResponse: one connection status change on the event stream
type StatusEventResponse struct {
	Status string    `json:"status"`
	Detail string    `json:"detail,omitempty"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}
