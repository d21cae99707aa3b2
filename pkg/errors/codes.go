package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// The prefix before the underscore names the module that owns the code.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
	ErrCodeStorageError       ErrorCode = "COMMON_017"
	ErrCodeMessagingError     ErrorCode = "COMMON_018"
	ErrCodeInvalidConfig      ErrorCode = "COMMON_019"
)

// Short aliases used by the factory helpers.
const (
	CodeUnknown      ErrorCode = ""
	CodeOK           ErrorCode = "OK"
	CodeInternal               = ErrCodeInternal
	CodeInvalidParam           = ErrCodeBadRequest
	CodeNotFound               = ErrCodeNotFound
	CodeConflict               = ErrCodeConflict
	CodeRateLimit              = ErrCodeTooManyRequests
	CodeUnavailable            = ErrCodeServiceUnavailable
	CodeTimeout                = ErrCodeTimeout
	CodeValidation             = ErrCodeValidation

	CodeMoleculeInvalidSMILES = ErrCodeMoleculeInvalidSMILES
)

// Molecule Module Error Codes
const (
	// ErrCodeMoleculeInvalidSMILES is the Invalid Input condition: the string
	// could not be parsed into a molecule.
	ErrCodeMoleculeInvalidSMILES    ErrorCode = "MOL_001"
	ErrCodeMoleculeInvalidFormat    ErrorCode = "MOL_003"
	ErrCodeStructureNotFound        ErrorCode = "MOL_004"
	ErrCodeMoleculeParsingFailed    ErrorCode = "MOL_006"
	ErrCodeMoleculeConversionFailed ErrorCode = "MOL_011"
	ErrCodeDescriptorsInvalid       ErrorCode = "MOL_016"
)

// Chemistry backend Error Codes
const (
	ErrCodeChemBackendUnavailable ErrorCode = "CHEM_001"
	ErrCodeChemBackendFailed      ErrorCode = "CHEM_002"
	ErrCodeChemBackendProtocol    ErrorCode = "CHEM_003"
)

// Drug-likeness rule Error Codes
const (
	ErrCodeThresholdsInvalid ErrorCode = "RULE_001"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusForbidden,
	ErrCodeNotImplemented:     http.StatusNotImplemented,
	ErrCodeStorageError:       http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeInvalidConfig:      http.StatusInternalServerError,

	ErrCodeMoleculeInvalidSMILES:    http.StatusBadRequest,
	ErrCodeMoleculeInvalidFormat:    http.StatusBadRequest,
	ErrCodeStructureNotFound:        http.StatusNotFound,
	ErrCodeMoleculeParsingFailed:    http.StatusUnprocessableEntity,
	ErrCodeMoleculeConversionFailed: http.StatusUnprocessableEntity,
	ErrCodeDescriptorsInvalid:       http.StatusBadRequest,

	ErrCodeChemBackendUnavailable: http.StatusServiceUnavailable,
	ErrCodeChemBackendFailed:      http.StatusBadGateway,
	ErrCodeChemBackendProtocol:    http.StatusBadGateway,

	ErrCodeThresholdsInvalid: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeFeatureDisabled:    "feature disabled",
	ErrCodeNotImplemented:     "not implemented",
	ErrCodeStorageError:       "object storage error",
	ErrCodeMessagingError:     "messaging error",
	ErrCodeInvalidConfig:      "invalid configuration",

	ErrCodeMoleculeInvalidSMILES:    "Invalid SMILES notation.",
	ErrCodeMoleculeInvalidFormat:    "invalid molecule format",
	ErrCodeStructureNotFound:        "structure not found",
	ErrCodeMoleculeParsingFailed:    "molecule parsing failed",
	ErrCodeMoleculeConversionFailed: "3D structure generation failed",
	ErrCodeDescriptorsInvalid:       "invalid molecular descriptors",

	ErrCodeChemBackendUnavailable: "chemistry backend unavailable",
	ErrCodeChemBackendFailed:      "chemistry backend failed",
	ErrCodeChemBackendProtocol:    "chemistry backend returned a malformed response",

	ErrCodeThresholdsInvalid: "invalid drug-likeness thresholds",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
