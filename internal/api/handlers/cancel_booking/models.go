package cancel_booking

// CancelBookingRequest HTTP request model
// Причина отмены опциональна
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}
