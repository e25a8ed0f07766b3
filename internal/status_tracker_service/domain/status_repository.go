package domain

import (
	"context"
)

// StatusRepository stores the latest DeliveryStatusRecord per message id.
//
// Upsert applies the last-write-wins rule on ObservedAt: when an existing
// record for the same message id has a strictly later ObservedAt, the update
// is ignored and Upsert returns false. Implementations must be safe for
// concurrent per-key upserts; no cross-key transactions are required.
type StatusRepository interface {
	// Upsert creates or overwrites the record for rec.MessageID. Returns
	// true when the record was applied, false when an out-of-order update
	// was ignored.
	Upsert(ctx context.Context, rec DeliveryStatusRecord) (bool, error)

	// Get returns the stored record for messageID, or (nil, nil) when no
	// status callback has been observed for that id yet.
	Get(ctx context.Context, messageID string) (*DeliveryStatusRecord, error)
}
