package yellow

// InvoiceStatus values the processor reports over IPN. The processor may
// add new ones at any time; unknown values are ignored upstream.
type InvoiceStatus string

const (
	StatusNew         InvoiceStatus = "new"
	StatusAuthorizing InvoiceStatus = "authorizing"
	StatusPaid        InvoiceStatus = "paid"
	StatusRefundOwed  InvoiceStatus = "refund_owed"
	StatusRefundPaid  InvoiceStatus = "refund_paid"
	StatusExpired     InvoiceStatus = "expired"
)

// Invoice is the processor's record of a single payment request. It is
// immutable once created; a re-quote means a new Invoice.
type Invoice struct {
	ID             string        `json:"id"`
	URL            string        `json:"url"`
	OrderReference string        `json:"order"`
	BaseAmount     float64       `json:"base_price"`
	BaseCurrency   string        `json:"base_ccy"`
	Status         InvoiceStatus `json:"status"`
}

// invoiceRequest is the wire payload for invoice creation.
type invoiceRequest struct {
	BasePrice float64 `json:"base_price"`
	BaseCcy   string  `json:"base_ccy"`
	Callback  string  `json:"callback"`
	Type      string  `json:"type"`
	Order     string  `json:"order"`
}

// IPNPayload is the body of an inbound instant payment notification.
// Nothing in it is trusted before the transport headers verify.
type IPNPayload struct {
	Order  string        `json:"order"`
	Status InvoiceStatus `json:"status"`
}
