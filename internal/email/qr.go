package email

import "github.com/skip2/go-qrcode"

// orderQRCode encodes the order tracking URL as a PNG.
func orderQRCode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, 256)
}
