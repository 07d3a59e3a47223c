package parcelite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudhraja/parcelite/schema"
)

func deviceObject() *schema.Object {
	return &schema.Object{
		Name:    "Device",
		Version: 1,
		Fields: []*schema.Field{
			{Name: "serial", ID: 1, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "battery", ID: 2, Type: schema.FieldType{Kind: schema.KindInt32}},
			{Name: "online", ID: 3, Type: schema.FieldType{Kind: schema.KindBool}},
			{Name: "owners", ID: 4, Type: schema.FieldType{
				Kind:    schema.KindList,
				Element: &schema.FieldType{Kind: schema.KindString},
			}},
		},
	}
}

func TestParcelite_MarshalParse(t *testing.T) {
	p := New()
	require.NoError(t, p.RegisterObject(deviceObject()))

	input := map[string]interface{}{
		"serial":  "SN-0042",
		"battery": int32(87),
		"online":  true,
		"owners":  []string{"ops", "qa"},
	}

	data, err := p.Marshal(input, "Device")
	require.NoError(t, err)

	result, err := p.Parse(data, "Device")
	require.NoError(t, err)

	assert.Equal(t, "SN-0042", result["serial"])
	assert.Equal(t, int32(87), result["battery"])
	assert.Equal(t, true, result["online"])
	assert.Equal(t, []interface{}{"ops", "qa"}, result["owners"])
}

func TestParcelite_UnknownObjectType(t *testing.T) {
	p := New()
	_, err := p.Marshal(map[string]interface{}{}, "Ghost")
	assert.Error(t, err)
	_, err = p.Parse([]byte{0, 0, 0, 0}, "Ghost")
	assert.Error(t, err)
}

// Device mirrors the Device schema for reflection-based decoding.
type Device struct {
	Serial  string   `parcel:"serial"`
	Battery int32    `parcel:"battery"`
	Online  bool     `parcel:"online"`
	Owners  []string `parcel:"owners"`
}

func TestParcelite_UnmarshalStruct(t *testing.T) {
	p := New()
	require.NoError(t, p.RegisterObject(deviceObject()))

	data, err := p.Marshal(map[string]interface{}{
		"serial":  "SN-7",
		"battery": int32(12),
		"online":  false,
		"owners":  []string{"lab"},
	}, "Device")
	require.NoError(t, err)

	var dev Device
	require.NoError(t, p.Unmarshal(data, &dev))

	assert.Equal(t, "SN-7", dev.Serial)
	assert.Equal(t, int32(12), dev.Battery)
	assert.False(t, dev.Online)
	assert.Equal(t, []string{"lab"}, dev.Owners)
}

func TestParcelite_MarshalStructRoundTrip(t *testing.T) {
	p := New()
	require.NoError(t, p.RegisterObject(deviceObject()))

	in := Device{Serial: "SN-9", Battery: 55, Online: true, Owners: []string{"ops"}}
	data, err := p.MarshalStruct(&in)
	require.NoError(t, err)

	var out Device
	require.NoError(t, p.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	_, err = p.MarshalStruct("not a struct")
	assert.Error(t, err)
}

func TestParcelite_UnmarshalRequiresStructPointer(t *testing.T) {
	p := New()
	require.NoError(t, p.RegisterObject(deviceObject()))

	var dev Device
	assert.Error(t, p.Unmarshal(nil, dev))
	var n int
	assert.Error(t, p.Unmarshal(nil, &n))
}

func TestParcelite_LoadDir(t *testing.T) {
	dir := t.TempDir()
	descriptor := `package: fleet
objects:
  - name: Sensor
    version: 2
    fields:
      - name: id
        id: 1
        type: {kind: int64}
      - name: unit
        id: 2
        type: {kind: string}
        default: celsius
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fleet.yaml"), []byte(descriptor), 0o644))

	p := New()
	require.NoError(t, p.LoadDir(dir))
	assert.Equal(t, []string{"fleet.Sensor"}, p.ListObjects())

	data, err := p.Marshal(map[string]interface{}{"id": int64(3)}, "fleet.Sensor")
	require.NoError(t, err)

	result, err := p.Parse(data, "Sensor")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result["id"])
	assert.Equal(t, "celsius", result["unit"])
}
