package constants

const (
	ErrCodeInvalidUser      = "INVALID_USER"
	ErrCodeIncorrectInvoice = "INCORRECT_INVOICE"
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeStoreFailure     = "STORE_FAILURE"
)

const (
	ErrMsgInvalidUser      = "Invalid user"
	ErrMsgIncorrectInvoice = "Incorrect invoice"
	ErrMsgInvalidSignature = "Invalid Signature"
)

var errorMessages = map[string]string{
	ErrCodeInvalidUser:      ErrMsgInvalidUser,
	ErrCodeIncorrectInvoice: ErrMsgIncorrectInvoice,
	ErrCodeInvalidSignature: ErrMsgInvalidSignature,
}

func GetErrorMessage(code string) string {
	msg, exists := errorMessages[code]
	if !exists {
		return ""
	}
	return msg
}
