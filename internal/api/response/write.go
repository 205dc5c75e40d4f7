package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status code. Nil data
// writes the status line alone.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
