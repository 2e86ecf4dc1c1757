package httpapi

// Error codes produced by request decoding.
const (
	codeInvalidFormData    = "INVALID_FORM_DATA"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
)
