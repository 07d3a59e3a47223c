package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/parcelite/schema"
)

const contactsYAML = `name: contacts.yaml
package: contacts
objects:
  - name: Contact
    version: 3
    elide_defaults: true
    fields:
      - name: id
        id: 1
        type: {kind: int64}
      - name: display_name
        id: 2
        type: {kind: string}
        default: unknown
      - name: phones
        id: 3
        type:
          kind: list
          element: {kind: string}
      - name: avatar
        id: 4
        type: {kind: bytes}
        write_if_absent: true
      - name: scores
        id: 6
        type:
          kind: sparsemap
          value: {kind: int32}
    reserved_ids: [7]
    removed_params:
      - id: 5
        type: {kind: string}
        target: id
        convert: string-to-int64
`

func TestLoadFile_ParsesDescriptor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contactsYAML), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	obj, err := r.GetObject("contacts.Contact")
	require.NoError(t, err)

	assert.Equal(t, int32(3), obj.Version)
	assert.True(t, obj.ElideDefaults)
	require.Len(t, obj.Fields, 5)

	name := obj.FieldByName("display_name")
	require.NotNil(t, name)
	assert.Equal(t, int32(2), name.ID)
	assert.Equal(t, schema.KindString, name.Type.Kind)
	assert.Equal(t, "unknown", name.Default)

	phones := obj.FieldByName("phones")
	require.NotNil(t, phones)
	assert.Equal(t, schema.KindList, phones.Type.Kind)
	require.NotNil(t, phones.Type.Element)
	assert.Equal(t, schema.KindString, phones.Type.Element.Kind)

	avatar := obj.FieldByName("avatar")
	require.NotNil(t, avatar)
	assert.True(t, avatar.WriteIfAbsent)

	scores := obj.FieldByName("scores")
	require.NotNil(t, scores)
	require.NotNil(t, scores.Type.Value)
	assert.Equal(t, schema.KindInt32, scores.Type.Value.Kind)

	assert.Equal(t, []int32{7}, obj.ReservedIDs)
	rp := obj.RemovedParamByID(5)
	require.NotNil(t, rp)
	assert.Equal(t, "id", rp.Target)
	assert.Equal(t, schema.ConvertStringToInt64, rp.Convert)
}

func TestLoadDir_WalksRecursively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "contacts.yml"), []byte(contactsYAML), 0o644))
	// Non-schema files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir))

	_, err := r.GetObject("Contact")
	assert.NoError(t, err)
}

func TestLoadFile_RejectsInvalidDescriptor(t *testing.T) {
	dir := t.TempDir()

	badID := `package: bad
objects:
  - name: Broken
    version: 1
    fields:
      - name: v
        id: 1000
        type: {kind: int32}
`
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(badID), 0o644))

	r := NewRegistry()
	err := r.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestLoadFile_RejectsNonSchemaExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	r := NewRegistry()
	assert.Error(t, r.LoadFile(path))
}

func TestLoadDir_MissingPath(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadDir(filepath.Join(t.TempDir(), "absent")))
}
