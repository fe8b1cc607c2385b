package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
//
// If this function returns an error, the HTTP response has already been
// written and the handler should return.
//
// Example usage:
//
//	var req CreateTaskRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestError,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// ResolveIdentity extracts the acting user from the request. When no identity
// is present it writes the 401 response and returns false; per-user handlers
// bail out before touching any state.
//
// Example usage:
//
//	userID, ok := ResolveIdentity(w, r, resolver)
//	if !ok {
//	    return
//	}
func ResolveIdentity(w http.ResponseWriter, r *http.Request, resolver identity.Resolver) (string, bool) {
	userID, err := resolver.Resolve(r)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Request without user identity", "path", r.URL.Path)
		respondError(w, http.StatusUnauthorized, ErrMsgIdentityRequiredError)
		return "", false
	}
	return userID, true
}
