package handlers

import (
	"encoding/json"
	"net/http"

	"homerent_service/errors"
)

func jsonResponse(value interface{}, writer http.ResponseWriter) {
	err := json.NewEncoder(writer).Encode(value)
	if err != nil {
		http.Error(writer, "Error encoding response", http.StatusInternalServerError)
	}
}

// writeError maps the stable error kinds onto HTTP status codes. Storage
// failures stay generic so driver details never leak to clients.
func writeError(writer http.ResponseWriter, err error) {
	switch err.(type) {
	case *errors.ValidationError, *errors.InvalidRangeError, *errors.NotAvailableError:
		http.Error(writer, err.Error(), http.StatusBadRequest)
	case *errors.ConflictError:
		http.Error(writer, err.Error(), http.StatusConflict)
	case *errors.NotFoundError:
		http.Error(writer, err.Error(), http.StatusNotFound)
	case *errors.AuthenticationError:
		http.Error(writer, err.Error(), http.StatusUnauthorized)
	case *errors.StorageError:
		http.Error(writer, "Internal server error", http.StatusInternalServerError)
	default:
		http.Error(writer, "Internal server error", http.StatusInternalServerError)
	}
}
