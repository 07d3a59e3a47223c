// Package appsindex moves installed-application records between a platform
// application registry and a document store. Records cross both process
// boundaries as parcel bytes; this package owns their schema descriptor
// and the sync glue, nothing more.
package appsindex

import (
	"github.com/anirudhraja/parcelite/schema"
)

// ObjectName is the registered schema name for application records.
const ObjectName = "apps.AppRecord"

// AppRecord is one installed application as reported by the platform
// registry.
type AppRecord struct {
	PackageName      string `parcel:"package_name"`
	Label            string `parcel:"label"`
	VersionCode      int64  `parcel:"version_code"`
	VersionName      string `parcel:"version_name"`
	FirstInstallTime int64  `parcel:"first_install_time"`
	Flags            int32  `parcel:"flags"`
	Icon             []byte `parcel:"icon"`
}

// RecordObject returns the parcel schema descriptor for AppRecord.
//
// Revision history: v1 carried the version code as a decimal string under
// id 8; v2 replaced it with the int64 version_code field. Id 8 is retired
// and folds into version_code when old data still carries it. Id 9 held a
// checksum that was dropped without replacement.
func RecordObject() *schema.Object {
	return &schema.Object{
		Name:    "AppRecord",
		Version: 2,
		Fields: []*schema.Field{
			{Name: "package_name", ID: 1, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "label", ID: 2, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "version_code", ID: 3, Type: schema.FieldType{Kind: schema.KindInt64}},
			{Name: "version_name", ID: 4, Type: schema.FieldType{Kind: schema.KindString}},
			{Name: "first_install_time", ID: 5, Type: schema.FieldType{Kind: schema.KindInt64}},
			{Name: "flags", ID: 6, Type: schema.FieldType{Kind: schema.KindInt32}},
			{Name: "icon", ID: 7, Type: schema.FieldType{Kind: schema.KindBytes}, WriteIfAbsent: true},
		},
		ReservedIDs: []int32{9},
		RemovedParams: []*schema.RemovedParam{
			{
				ID:      8,
				Type:    schema.FieldType{Kind: schema.KindString},
				Target:  "version_code",
				Convert: schema.ConvertStringToInt64,
			},
		},
	}
}

// SchemaFile returns the descriptor wrapped in its schema file, which
// qualifies the object name with the apps package.
func SchemaFile() *schema.File {
	return &schema.File{
		Name:    "apps.yaml",
		Package: "apps",
		Objects: []*schema.Object{RecordObject()},
	}
}

// ToMap converts a record to the codec's value-map form.
func (r *AppRecord) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"package_name":       r.PackageName,
		"label":              r.Label,
		"version_code":       r.VersionCode,
		"version_name":       r.VersionName,
		"first_install_time": r.FirstInstallTime,
		"flags":              r.Flags,
	}
	if r.Icon != nil {
		m["icon"] = r.Icon
	}
	return m
}
