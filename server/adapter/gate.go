package adapter

import (
	"context"
)

// operation is the shape shared by every list operation.
type operation[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// ensureLogin wraps op so it only runs once the adapter holds a SharePoint session.
//
// The first call logs in and caches the result on the adapter; later calls go
// straight to op. Calls racing before the first login completes each log in on
// their own. Once set, the session flag is never cleared: an expired remote
// session surfaces as an operation error, not as a new login.
func ensureLogin[Req, Res any](a *Adapter, op operation[Req, Res]) operation[Req, Res] {
	return func(ctx context.Context, req Req) (Res, error) {
		if a.authenticated.Load() {
			return op(ctx, req)
		}

		a.logger.LogDebug("Logging in to SharePoint", "list_id", a.listID)
		if err := a.client.Login(ctx); err != nil {
			var zero Res
			a.logger.LogWarn("SharePoint login failed", "list_id", a.listID, "error", err.Error())
			return zero, &AuthError{ListID: a.listID, Err: err}
		}
		a.authenticated.Store(true)

		return op(ctx, req)
	}
}
