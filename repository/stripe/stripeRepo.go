package striperepo

import "context"

type CreateIntentReq struct {
	AmountMinor int64 // minor units (cents)
	Currency    string
	BookingID   int64
	UserID      int64
}

type CreateIntentResp struct {
	IntentID     string
	ClientSecret string
	Status       string
}

type Repo interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentReq) (*CreateIntentResp, error)

	// VerifyWebhookSignature checks the Stripe-Signature header against the
	// exact raw body bytes. Events failing this check must never reach any
	// state change.
	VerifyWebhookSignature(sigHeader string, rawBody []byte) error
}
