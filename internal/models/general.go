package models

type ErrorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}
