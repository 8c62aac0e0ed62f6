package errors

// Error codes for the catalog contracts. Keep stable; used across the catalog, gateway and adapters.
const (
	ErrCodeDuplicateDescriptor    = "catalog.duplicate_descriptor"
	ErrCodeDuplicateType          = "catalog.duplicate_type"
	ErrCodeDescriptorNotFound     = "catalog.descriptor_not_found"
	ErrCodeInvalidDescriptor      = "catalog.invalid_descriptor"
	ErrCodeCatalogSealed          = "catalog.sealed"
	ErrCodeRoleMismatch           = "catalog.role_mismatch"
	ErrCodeMalformedIdentity      = "catalog.malformed_identity"
	ErrCodeInvalidRecord          = "catalog.invalid_record"
	ErrCodeTransportNotConfigured = "catalog.transport_not_configured"
	ErrCodeSendFailed             = "catalog.send_failed"
	ErrCodePublishFailed          = "catalog.publish_failed"
	ErrCodeSerializationFailed    = "catalog.serialization_failed"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrDuplicateDescriptor    = Code(ErrCodeDuplicateDescriptor)
	ErrDuplicateType          = Code(ErrCodeDuplicateType)
	ErrDescriptorNotFound     = Code(ErrCodeDescriptorNotFound)
	ErrInvalidDescriptor      = Code(ErrCodeInvalidDescriptor)
	ErrCatalogSealed          = Code(ErrCodeCatalogSealed)
	ErrRoleMismatch           = Code(ErrCodeRoleMismatch)
	ErrMalformedIdentity      = Code(ErrCodeMalformedIdentity)
	ErrInvalidRecord          = Code(ErrCodeInvalidRecord)
	ErrTransportNotConfigured = Code(ErrCodeTransportNotConfigured)
	ErrSendFailed             = Code(ErrCodeSendFailed)
	ErrPublishFailed          = Code(ErrCodePublishFailed)
	ErrSerializationFailed    = Code(ErrCodeSerializationFailed)
)
