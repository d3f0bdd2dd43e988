package services

// Kind classifies a domain error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// Error is a domain error the HTTP layer can show to the client. Anything
// else reaching a controller is treated as unexpected.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps request field names to what is wrong with them.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// ValidationError reports invalid input. fields may be nil.
func ValidationError(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

var (
	ErrUnknownUser = newError(KindUnauthenticated, "user not found")

	ErrDictionaryNotFound = newError(KindNotFound, "dictionary not found")
	ErrNoAccess           = newError(KindForbidden, "you do not have access to this dictionary")
	ErrNotOwnerUpdate     = newError(KindForbidden, "you can only update your own dictionaries")
	ErrNotOwnerDelete     = newError(KindForbidden, "you can only delete your own dictionaries")
	ErrNotOwnerAddWords   = newError(KindForbidden, "you can only add words to your own dictionaries")

	// Purchase rejections, in the order they are checked.
	ErrPaymentCodeRequired = newError(KindValidation, "payment code is required")
	ErrInvalidPaymentCode  = newError(KindValidation, "invalid payment code")
	ErrNotForSale          = newError(KindValidation, "this dictionary is not for sale")
	ErrOwnDictionary       = newError(KindValidation, "you cannot buy your own dictionary")
	ErrAlreadyPurchased    = newError(KindValidation, "you have already purchased this dictionary")
)
