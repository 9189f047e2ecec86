package apierrors

import (
	"errors"
	"strings"

	"callbridge/internal/clients/deepgram"
	twilioClient "callbridge/internal/clients/twilio"
	"callbridge/internal/store"
	"callbridge/internal/voicecall/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	// Check if already an APIError
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map voice call processor errors
	case errors.Is(err, processor.ErrUnknownVariant):
		return NotFound(CodeUnknownVariant, "Unknown call configuration")

	case errors.Is(err, processor.ErrTelephonyDisabled):
		return ServiceUnavailable(CodeTelephonyDisabled, "Outbound calling is not enabled on this server", err)

	case errors.Is(err, processor.ErrPublicURLMissing):
		return ServiceUnavailable(CodeConfigurationError, "Server public URL is not configured", err)

	case errors.Is(err, processor.ErrAgentUnavailable),
		errors.Is(err, deepgram.ErrDialFailed),
		errors.Is(err, deepgram.ErrHandshakeRejected):
		return ServiceUnavailable(CodeAgentUnavailable, "Voice agent is temporarily unavailable. Please try again later.", err)

	// Map client errors
	case errors.Is(err, twilioClient.ErrCallRejected):
		return ServiceUnavailable(CodeTelephonyProviderError, "Telephony provider rejected the call", err)

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "twilio") {
		return ServiceUnavailable(
			CodeTelephonyProviderError,
			"Telephony provider is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "deepgram") || strings.Contains(errMsg, "agent") {
		return ServiceUnavailable(
			CodeAgentUnavailable,
			"Voice agent is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Default: Unknown error - return sanitized 500
	return InternalError(err)
}
