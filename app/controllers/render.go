package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"inkwell/app/errs"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []errs.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a taxonomy error onto a status code and body. When
// production is set, internal failures are reported without detail.
func writeError(w http.ResponseWriter, err error, production bool) {
	status := errs.HTTPStatus(err)
	body := errorResponse{Error: err.Error()}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		body.Error = appErr.Message
		body.Details = appErr.Fields
		if appErr.Kind == errs.KindInternal {
			log.Printf("internal error: %v", appErr.Err)
			if production {
				body.Error = "internal error"
			} else if appErr.Err != nil {
				body.Error = appErr.Err.Error()
			}
		}
	} else {
		log.Printf("unhandled error: %v", err)
		if production {
			body.Error = "internal error"
		}
	}

	writeJSON(w, status, body)
}
