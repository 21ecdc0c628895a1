// Package verify is the boundary to the phone-verification provider. The
// engine only consumes the "verified identity" fact; OTP generation and SMS
// delivery live entirely behind this interface.
package verify

import "context"

type Provider interface {
	// Start sends a verification code to the phone number.
	Start(ctx context.Context, phone string) error

	// Check validates a code previously sent to the phone number.
	Check(ctx context.Context, phone, code string) (bool, error)
}
