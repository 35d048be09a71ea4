package checkout

import "errors"

var ErrProcessorUnavailable = errors.New("payment processor unavailable")

// RetryMessage is shown to the customer when invoice creation fails. The
// checkout flow degrades to a resubmission prompt instead of abandoning
// the cart.
const RetryMessage = "We're sorry, an error has occurred while completing your request. " +
	"Please resubmit the shopping cart and try again. If the error persists, " +
	"please contact support@yellowpay.co."
