package appsindex

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/parcelite"
	"github.com/anirudhraja/parcelite/schema"
)

var testRecords = []AppRecord{
	{
		PackageName:      "com.example.mail",
		Label:            "Mail",
		VersionCode:      42,
		VersionName:      "4.2.0",
		FirstInstallTime: 1700000000,
		Flags:            1,
		Icon:             []byte{0x89, 0x50},
	},
	{
		PackageName:      "com.example.music",
		Label:            "Music",
		VersionCode:      7,
		VersionName:      "0.7",
		FirstInstallTime: 1710000000,
		Flags:            0,
	},
}

func newTestIndexer(t *testing.T) (*Indexer, *MemRegistry, *MemDocumentStore) {
	t.Helper()
	apps := NewMemRegistry(testRecords...)
	docs := NewMemDocumentStore()
	ix, err := NewIndexer(apps, docs, nil)
	require.NoError(t, err)
	return ix, apps, docs
}

func TestIndexer_SyncAll(t *testing.T) {
	ix, _, docs := newTestIndexer(t)
	ctx := context.Background()

	// A stale document for an app that is no longer installed.
	require.NoError(t, docs.Upsert(ctx, []Document{{ID: "com.example.gone", Payload: []byte{1}}}))

	require.NoError(t, ix.SyncAll(ctx))

	assert.Equal(t, 2, docs.Count())
	_, stale := docs.Get("com.example.gone")
	assert.False(t, stale)

	doc, ok := docs.Get("com.example.mail")
	require.True(t, ok)

	rec, err := ix.Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, testRecords[0], rec)
}

func TestIndexer_RoundTripWithoutIcon(t *testing.T) {
	ix, _, docs := newTestIndexer(t)
	require.NoError(t, ix.SyncAll(context.Background()))

	doc, ok := docs.Get("com.example.music")
	require.True(t, ok)

	rec, err := ix.Decode(doc)
	require.NoError(t, err)
	// The icon was written as an explicit null and stays nil.
	assert.Nil(t, rec.Icon)
	assert.Equal(t, testRecords[1], rec)
}

func TestIndexer_EnsureSchema(t *testing.T) {
	ix, _, docs := newTestIndexer(t)
	ctx := context.Background()

	require.NoError(t, ix.EnsureSchema(ctx, false))
	s, err := docs.GetSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, s.Version)
	assert.Equal(t, []string{ObjectName}, s.ObjectTypes)

	// A store already on a newer revision is left alone.
	require.NoError(t, docs.SetSchema(ctx, SearchSchema{Version: schemaVersion + 1}, false))
	require.NoError(t, ix.EnsureSchema(ctx, false))
	s, err = docs.GetSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion+1, s.Version)

	// Unless the caller forces the downgrade.
	require.NoError(t, ix.EnsureSchema(ctx, true))
	s, err = docs.GetSchema(ctx)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, s.Version)
}

func TestIndexer_RunAppliesEvents(t *testing.T) {
	ix, apps, docs := newTestIndexer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ix.Run(ctx) }()

	// Events raised before Run subscribes are dropped; wait for the watcher.
	require.Eventually(t, func() bool {
		apps.mu.Lock()
		defer apps.mu.Unlock()
		return apps.watcher != nil
	}, 2*time.Second, 5*time.Millisecond)

	apps.Install(AppRecord{PackageName: "com.example.new", Label: "New", VersionCode: 1})
	require.Eventually(t, func() bool {
		_, ok := docs.Get("com.example.new")
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	apps.Uninstall("com.example.new")
	require.Eventually(t, func() bool {
		_, ok := docs.Get("com.example.new")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestIndexer_RunEndsWhenWatchCloses(t *testing.T) {
	ix, apps, _ := newTestIndexer(t)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- ix.Run(ctx) }()

	// Give Run a moment to subscribe before closing the stream.
	require.Eventually(t, func() bool {
		apps.mu.Lock()
		defer apps.mu.Unlock()
		return apps.watcher != nil
	}, 2*time.Second, 5*time.Millisecond)

	apps.Close()
	assert.NoError(t, <-done)
}

func TestRecordObject_MigratesLegacyVersionCode(t *testing.T) {
	ix, _, _ := newTestIndexer(t)

	// A v1 writer carried the version code as a string under the retired
	// id 8.
	legacy := parcelite.New()
	require.NoError(t, legacy.RegisterObject(&schema.Object{
		Name:    "AppRecord",
		Version: 1,
		Fields: []*schema.Field{
			{Name: "package_name", ID: 1, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "label", ID: 2, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "version_code", ID: 8, Type: schema.FieldType{Kind: schema.KindString}},
		},
	}))

	payload, err := legacy.Marshal(map[string]interface{}{
		"package_name": "com.example.old",
		"label":        "Old",
		"version_code": "5",
	}, "AppRecord")
	require.NoError(t, err)

	rec, err := ix.Decode(Document{ID: "com.example.old", Payload: payload})
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.VersionCode)
	assert.Equal(t, "com.example.old", rec.PackageName)
}
