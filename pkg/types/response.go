package types

// Envelope is the wire shape every endpoint returns: {success, data?, message?}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
	Source  string `json:"source,omitempty"`
}
