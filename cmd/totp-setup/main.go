// Command totp-setup provisions a new TOTP secret for the admin account.
// It prints the base32 secret for the server environment and writes a QR
// code image that authenticator apps can scan.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

func main() {
	issuer := flag.String("issuer", "Musubi Portfolio", "issuer shown in the authenticator app")
	account := flag.String("account", "admin", "account name shown in the authenticator app")
	out := flag.String("out", "totp-setup.png", "path for the provisioning QR code image")
	flag.Parse()

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      *issuer,
		AccountName: *account,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate secret: %v\n", err)
		os.Exit(1)
	}

	if err := qrcode.WriteFile(key.URL(), qrcode.Medium, 256, *out); err != nil {
		fmt.Fprintf(os.Stderr, "write qr code: %v\n", err)
		os.Exit(1)
	}

	// A code for the current step, handy for checking the scan worked.
	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate code: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("New TOTP secret generated.")
	fmt.Println()
	fmt.Printf("  Secret:       %s\n", key.Secret())
	fmt.Printf("  otpauth URL:  %s\n", key.URL())
	fmt.Printf("  QR code:      %s\n", *out)
	fmt.Printf("  Current code: %s\n", code)
	fmt.Println()
	fmt.Println("Add to the server environment:")
	fmt.Println()
	fmt.Printf("  TOTP_SECRET=%s\n", key.Secret())
}
