package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// recoverPanic keeps a single misbehaving event from taking the gateway
// down; the event is logged and dropped.
func recoverPanic(handler string) {
	if r := recover(); r != nil {
		log.Printf("[%s] recovered from panic: %v", handler, r)
	}
}
