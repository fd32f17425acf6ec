// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError maps engine errors onto status codes. Guardrail
// rejections are audited. Unexpected failures are logged but their text is
// not returned to the client.
func (h *Handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *recommend.ValidationError
	var gv *recommend.GuardrailViolation
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		respondError(w, r, http.StatusRequestEntityTooLarge, models.ErrCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil, nil)
	case errors.As(err, &verr):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(),
			map[string]interface{}{"field": verr.Field, "reason": verr.Reason}, nil)
	case errors.As(err, &gv):
		h.audit.LogGuardrailRejection(
			logging.RequestIDFromContext(r.Context()),
			gv.Signal,
			r.RemoteAddr,
			r.UserAgent(),
		)
		respondError(w, r, http.StatusUnprocessableEntity, models.ErrCodeGuardrail,
			"profile references a protected attribute and cannot be ranked",
			map[string]interface{}{"signal": gv.Signal}, nil)
	case errors.Is(err, recommend.ErrOccupationNotFound):
		respondError(w, r, http.StatusNotFound, models.ErrCodeOccupationNotFound, "occupation not found", nil, nil)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeRecommendFailed,
			"failed to generate recommendations", nil, err)
	}
}

// readBody reads a size-limited request body.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	defer func() { _ = body.Close() }()
	return io.ReadAll(body)
}

// decodeProfile reads and decodes a profile body.
func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (*recommend.UserProfile, error) {
	data, err := h.readBody(w, r)
	if err != nil {
		return nil, err
	}
	return recommend.DecodeProfile(data)
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter. An absent parameter
// yields defaultValue; a malformed one yields a ValidationError.
// getOptionalIntParam returns nil when key is absent or empty.
func getOptionalIntParam(r *http.Request, key string) (*int, error) {
	if strings.TrimSpace(r.URL.Query().Get(key)) == "" {
		return nil, nil
	}
	n, err := getIntParam(r, key, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &recommend.ValidationError{Field: key, Reason: "must be an integer"}
	}
	return n, nil
}
