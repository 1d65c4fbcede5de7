package store

import (
	"context"
	"errors"
)

// Collection names. Each collection is one whole JSON document: an array of
// records, except financials which is a composite object of two arrays.
const (
	CollectionLoans       = "loans"
	CollectionCustomers   = "customers"
	CollectionUsers       = "users"
	CollectionCollections = "collections"
	CollectionActivities  = "userActivities"
	CollectionFinancials  = "financials"
)

// Names lists every collection, in backup/snapshot order
var Names = []string{
	CollectionLoans,
	CollectionCustomers,
	CollectionUsers,
	CollectionCollections,
	CollectionActivities,
	CollectionFinancials,
}

// ErrCollectionMissing is returned by Load when a collection document has
// never been written. Callers treat it as an empty collection.
var ErrCollectionMissing = errors.New("collection document missing")

// CollectionStore reads and writes whole collection documents. There is no
// record-level access: every mutation is a read-modify-write of the full
// document, matching the source-of-record format.
type CollectionStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Ping(ctx context.Context) error
}
