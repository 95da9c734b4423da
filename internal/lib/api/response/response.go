// Package response escribe el sobre JSON {msg, data, status} que usan
// todos los endpoints de la API.
package response

import (
	"encoding/json"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope es el sobre fijo de todas las respuestas.
type Envelope struct {
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data"`
	Status string      `json:"status"`
}

func write(w http.ResponseWriter, code int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// JSON envía una respuesta de éxito con datos.
func JSON(w http.ResponseWriter, code int, msg string, data interface{}) {
	write(w, code, Envelope{Msg: msg, Data: data, Status: StatusSuccess})
}

// Error envía una respuesta de error sin datos.
func Error(w http.ResponseWriter, code int, msg string) {
	write(w, code, Envelope{Msg: msg, Data: nil, Status: StatusError})
}
