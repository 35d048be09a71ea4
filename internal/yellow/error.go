package yellow

import "errors"

var (
	ErrInvoiceCreation = errors.New("invoice creation failed")
	ErrInvalidAmount   = errors.New("invoice amount must be positive")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrInvalidCallback = errors.New("callback must be an absolute URL")
)
