package appsindex

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/anirudhraja/parcelite"
)

// schemaVersion is the search-schema revision this indexer writes.
const schemaVersion int32 = 2

// Indexer keeps the document store in step with the application registry.
// Records cross the boundary as parcel bytes in both directions.
type Indexer struct {
	apps  AppRegistry
	docs  DocumentStore
	codec *parcelite.Parcelite
	log   *slog.Logger
}

// NewIndexer builds an indexer. A nil logger falls back to slog.Default.
func NewIndexer(apps AppRegistry, docs DocumentStore, log *slog.Logger) (*Indexer, error) {
	codec := parcelite.New()
	if err := codec.GetRegistry().RegisterFile(SchemaFile()); err != nil {
		return nil, errors.Wrap(err, "failed to register app record schema")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Indexer{apps: apps, docs: docs, codec: codec, log: log}, nil
}

// EnsureSchema upgrades the document store schema when ours is newer. A
// store holding a newer revision than this binary is left alone unless
// forceOverride is set.
func (ix *Indexer) EnsureSchema(ctx context.Context, forceOverride bool) error {
	current, err := ix.docs.GetSchema(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read document store schema")
	}
	if current.Version >= schemaVersion && !forceOverride {
		return nil
	}
	next := SearchSchema{Version: schemaVersion, ObjectTypes: []string{ObjectName}}
	if err := ix.docs.SetSchema(ctx, next, forceOverride); err != nil {
		return errors.Wrap(err, "failed to set document store schema")
	}
	ix.log.Info("document store schema updated",
		"from", current.Version, "to", schemaVersion)
	return nil
}

// SyncAll performs a full synchronization: every installed application is
// upserted and documents for uninstalled ones are deleted.
func (ix *Indexer) SyncAll(ctx context.Context) error {
	records, err := ix.apps.ListInstalled(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list installed applications")
	}

	docs := make([]Document, 0, len(records))
	keep := make([]string, 0, len(records))
	for i := range records {
		doc, err := ix.encode(&records[i])
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		keep = append(keep, doc.ID)
	}

	if err := ix.docs.Upsert(ctx, docs); err != nil {
		return errors.Wrap(err, "failed to upsert documents")
	}
	if err := ix.docs.DeleteByQuery(ctx, Filter{KeepIDs: keep}); err != nil {
		return errors.Wrap(err, "failed to delete stale documents")
	}

	ix.log.Info("full sync complete", "count", len(docs))
	return nil
}

// Run applies registry change notifications until the context ends.
func (ix *Indexer) Run(ctx context.Context) error {
	events, err := ix.apps.Watch(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to watch application registry")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := ix.apply(ctx, ev); err != nil {
				ix.log.Error("failed to apply registry event",
					"package", ev.Record.PackageName, "err", err)
			}
		}
	}
}

func (ix *Indexer) apply(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventAdded, EventUpdated:
		doc, err := ix.encode(&ev.Record)
		if err != nil {
			return err
		}
		return ix.docs.Upsert(ctx, []Document{doc})
	case EventRemoved:
		return ix.docs.DeleteByQuery(ctx, Filter{IDs: []string{ev.Record.PackageName}})
	default:
		return errors.Errorf("unknown event kind %d", ev.Kind)
	}
}

// encode converts a record to its document form.
func (ix *Indexer) encode(r *AppRecord) (Document, error) {
	payload, err := ix.codec.Marshal(r.ToMap(), ObjectName)
	if err != nil {
		return Document{}, errors.Wrapf(err, "failed to encode record %s", r.PackageName)
	}
	return Document{ID: r.PackageName, Payload: payload}, nil
}

// Decode reconstructs a record from a document payload.
func (ix *Indexer) Decode(doc Document) (AppRecord, error) {
	var r AppRecord
	if err := ix.codec.Unmarshal(doc.Payload, &r); err != nil {
		return AppRecord{}, errors.Wrapf(err, "failed to decode document %s", doc.ID)
	}
	return r, nil
}
