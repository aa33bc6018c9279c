package pay_booking

// PayBookingRequest HTTP request model
type PayBookingRequest struct {
	Method string `json:"method"` // "card", "cash", ...
}
