package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestAddressPNG(t *testing.T) {
	svc := NewQRCodeService()

	data, err := svc.AddressPNG("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "")
	if err != nil {
		t.Fatalf("AddressPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}

	if _, err := svc.AddressPNG("  ", ""); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestAddressDataURI(t *testing.T) {
	svc := NewQRCodeService()

	uri, err := svc.AddressDataURI("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0.5")
	if err != nil {
		t.Fatalf("AddressDataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", uri)
	}
}
