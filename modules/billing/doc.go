// Package billing exposes the subscription system over HTTP.
//
// It mounts three surfaces on one chi router: a public plan listing, member
// routes for the checkout/cancel/renew flow behind the authentication gate,
// and an /admin subtree for plan management and subscription reporting
// behind the admin gate. Responses use the core JSON envelope; domain errors
// map to stable error keys so clients branch on kind, not message text.
package billing
