package service

// QRCodeService generates and parses order receipt QR codes.
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code carrying the order reference.
	GenerateOrderQR(orderID string) ([]byte, error)

	// ParseOrderQR decodes QR payload data back into the order reference.
	ParseOrderQR(qrData string) (string, error)
}
