package response

import (
	"encoding/json"
	"net/http"
)

type pageEnvelope struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

type okEnvelope struct {
	OK bool `json:"ok"`
}

// JSON writes v as the response body with status 200.
func JSON(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

// Created writes v as the response body with status 201.
func Created(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusCreated, v)
}

// Page writes the paged collection envelope. Total is the filtered count
// before slicing.
func Page(w http.ResponseWriter, data any, total, page, pageSize int) {
	writeJSON(w, http.StatusOK, pageEnvelope{Data: data, Total: total, Page: page, PageSize: pageSize})
}

// OK writes {"ok": true}.
func OK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, okEnvelope{OK: true})
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}

// NotFound writes a bodyless 404, the contract for unknown ids.
func NotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
