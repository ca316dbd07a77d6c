// Package token implements compact HMAC-signed payload tokens.
//
// Tokens carry a JSON payload plus a truncated HMAC-SHA256 signature and are
// used as correlation handles between the two phases of the payment
// confirmation flow: the payload links a confirm call back to the pending
// subscription created by the matching initiate call, and the signature
// prevents a client from forging a handle for somebody else's record.
//
//	type confirmClaims struct {
//	    SubscriptionID uuid.UUID `json:"sid"`
//	    AccountID      uuid.UUID `json:"aid"`
//	}
//
//	tok, err := token.Generate(confirmClaims{subID, accountID}, secret)
//	claims, err := token.Parse[confirmClaims](tok, secret)
package token
