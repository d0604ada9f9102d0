package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(bookingID int) ([]byte, error)
}

// DefaultQRGenerator renders a PNG pointing at the booking confirmation page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(bookingID int) string {
	return fmt.Sprintf("%s/booking-confirmation?id=%d", strings.TrimRight(g.BaseURL, "/"), bookingID)
}

func (g DefaultQRGenerator) Generate(bookingID int) ([]byte, error) {
	return qrcode.Encode(g.Link(bookingID), qrcode.Medium, 256)
}
