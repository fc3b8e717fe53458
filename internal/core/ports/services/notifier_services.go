package services

import "context"

// NotifierSvc accepts fire-and-forget text notifications for asynchronous
// delivery to an external channel. Notify must not block and must never
// surface delivery failures to the caller; implementations queue the message
// and log failures. The borrowing lifecycle calls it only after its database
// transaction has committed.
type NotifierSvc interface {
	Notify(ctx context.Context, text string)
}
