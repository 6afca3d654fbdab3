package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCodeService renders wallet addresses as QR codes for funding flows.
type QRCodeService struct{}

func NewQRCodeService() *QRCodeService {
	return &QRCodeService{}
}

// AddressPNG generates a PNG QR code encoding the EIP-681 payment URI for
// the address. amount is optional and expressed in the native token.
func (s *QRCodeService) AddressPNG(address, amount string) ([]byte, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("address is empty")
	}
	uri := "ethereum:" + address
	if amount != "" {
		uri += "?value=" + amount
	}

	qr, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(256)); err != nil {
		return nil, fmt.Errorf("encode QR code PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// AddressDataURI returns the QR code as a data: URI suitable for inlining
// in tool output.
func (s *QRCodeService) AddressDataURI(address, amount string) (string, error) {
	data, err := s.AddressPNG(address, amount)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
