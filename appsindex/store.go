package appsindex

import (
	"context"
)

// EventKind classifies application registry change notifications.
type EventKind int

const (
	EventAdded EventKind = iota
	EventUpdated
	EventRemoved
)

// Event is one application registry change notification.
type Event struct {
	Kind   EventKind
	Record AppRecord
}

// AppRegistry enumerates installed application records and notifies about
// changes. Implemented by the platform; this package only consumes it.
type AppRegistry interface {
	ListInstalled(ctx context.Context) ([]AppRecord, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Document is one unit handed to the document store. Payload carries the
// record's parcel encoding; the store never interprets it beyond storage.
type Document struct {
	ID      string
	Payload []byte
}

// Filter selects documents for deletion.
type Filter struct {
	// IDs deletes exactly these document ids.
	IDs []string
	// KeepIDs deletes every document whose id is NOT listed. Used to drop
	// documents for applications that are no longer installed.
	KeepIDs []string
}

// SearchSchema describes the document store's schema state.
type SearchSchema struct {
	Version     int32
	ObjectTypes []string
}

// DocumentStore accepts documents and schemas and executes deletions.
// Implemented by the search engine; this package only consumes it.
type DocumentStore interface {
	Upsert(ctx context.Context, docs []Document) error
	DeleteByQuery(ctx context.Context, filter Filter) error
	GetSchema(ctx context.Context) (SearchSchema, error)
	SetSchema(ctx context.Context, s SearchSchema, forceOverride bool) error
}
