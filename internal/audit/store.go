package audit

import "context"

// Store persists audit events. ListBySubject returns an empty slice for a
// subject with no history.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
