package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeInvalidParameter    = "INVALID_PARAMETER"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeMenuFetch           = "MENU_FETCH_FAILED"
	ErrCodeMalformedPayload    = "MALFORMED_PAYLOAD"
	ErrCodeEmptyDataset        = "EMPTY_DATASET"
	ErrCodeComboConstraint     = "COMBO_CONSTRAINT_VIOLATION"
	ErrCodeIncompleteCombo     = "INCOMPLETE_COMBO"
	ErrCodeInvalidCartItem     = "INVALID_CART_ITEM"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	ErrCodeSessionNotFound     = "SESSION_NOT_FOUND"
	ErrCodeNotCombo            = "NOT_A_COMBO"
	ErrCodeUnknownComboGroup   = "UNKNOWN_COMBO_GROUP"
	ErrCodeUnknownComboItem    = "UNKNOWN_COMBO_ITEM"
	ErrCodeConfigurationClosed = "CONFIGURATION_CLOSED"
	ErrCodeNoConfiguration     = "NO_ACTIVE_CONFIGURATION"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeSessionCheckedOut   = "SESSION_CHECKED_OUT"
	ErrCodePrinterUnavailable  = "PRINTER_UNAVAILABLE"
	ErrCodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Menu ingestion errors. ErrMenuFetch and ErrMalformedPayload are recovered
// locally by retry and fallback; ErrEmptyDataset only reaches the kiosk when
// no cached menu exists.
var (
	ErrMenuFetch        = NewDomainError(ErrCodeMenuFetch, "Menu could not be retrieved from upstream")
	ErrMalformedPayload = NewDomainError(ErrCodeMalformedPayload, "Menu payload is missing d.Menu or it is not an array")
	ErrEmptyDataset     = NewDomainError(ErrCodeEmptyDataset, "Menu data is empty")
)

// Combo configuration and cart errors.
var (
	ErrComboConstraint       = NewDomainError(ErrCodeComboConstraint, "Selection would exceed the group's maximum quantity")
	ErrIncompleteCombo       = NewDomainError(ErrCodeIncompleteCombo, "Every required combo group needs a selection")
	ErrInvalidCartItem       = NewDomainError(ErrCodeInvalidCartItem, "Combo selections must be present for combo products only")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity is out of range")
	ErrNotCombo              = NewDomainError(ErrCodeNotCombo, "Product is not a combo")
	ErrUnknownComboGroup     = NewDomainError(ErrCodeUnknownComboGroup, "Combo group does not exist on this product")
	ErrUnknownComboItem      = NewDomainError(ErrCodeUnknownComboItem, "Item does not exist in this combo group")
	ErrConfigurationClosed   = NewDomainError(ErrCodeConfigurationClosed, "Combo configuration has already been committed")
	ErrNoActiveConfiguration = NewDomainError(ErrCodeNoConfiguration, "No combo configuration is in progress")
	ErrCartItemNotFound      = NewDomainError(ErrCodeCartItemNotFound, "Cart line does not exist")
)

// Lookup and session errors.
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrSessionNotFound    = NewDomainError(ErrCodeSessionNotFound, "Kiosk session not found")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrSessionCheckedOut  = NewDomainError(ErrCodeSessionCheckedOut, "Session has already been checked out")
	ErrPrinterUnavailable = NewDomainError(ErrCodePrinterUnavailable, "Receipt printer is not available")
	ErrMissingProductID   = NewDomainError(ErrCodeMissingField, "productId is required")
)
