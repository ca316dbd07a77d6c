package subscription

import "time"

// Config holds the service's environment-driven settings, loaded with
// pkg/config.
type Config struct {
	// TokenSecret signs confirmation correlation tokens. Rotating it
	// invalidates in-flight checkouts, which is safe: the pending slot is
	// reclaimed on the next failed Confirm or an explicit Abandon.
	TokenSecret string `env:"BILLING_TOKEN_SECRET,required"`

	// ConfirmTimeout bounds how long Confirm waits for the payment
	// authorizer. A timeout is treated as a declined payment.
	ConfirmTimeout time.Duration `env:"BILLING_CONFIRM_TIMEOUT" envDefault:"30s"`
}
