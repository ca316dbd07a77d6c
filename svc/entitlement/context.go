package entitlement

import "context"

type ctxKey struct{}

// WithSnapshot returns a context carrying the resolved snapshot.
func WithSnapshot(ctx context.Context, snap *Snapshot) context.Context {
	return context.WithValue(ctx, ctxKey{}, snap)
}

// SnapshotFromContext extracts the snapshot stored by the middleware. Returns
// nil when the request was not resolved (unauthenticated or no middleware).
func SnapshotFromContext(ctx context.Context) *Snapshot {
	snap, _ := ctx.Value(ctxKey{}).(*Snapshot)
	return snap
}
