package parcelite

import (
	"fmt"
	"reflect"

	"github.com/anirudhraja/parcelite/registry"
	"github.com/anirudhraja/parcelite/schema"
	"github.com/anirudhraja/parcelite/wire"
)

// ===== SCHEMA-AWARE API =====

// Parcelite provides schema-aware parcel operations without generated code
type Parcelite struct {
	registry *registry.Registry
}

// New creates a new Parcelite instance
func New() *Parcelite {
	return &Parcelite{
		registry: registry.NewRegistry(),
	}
}

// RegisterObject registers a single object schema descriptor
func (p *Parcelite) RegisterObject(obj *schema.Object) error {
	return p.registry.RegisterObject(obj)
}

// LoadDir loads every YAML schema descriptor under a directory
func (p *Parcelite) LoadDir(path string) error {
	return p.registry.LoadDir(path)
}

// Parse decodes parcel bytes using schema-aware decoder
func (p *Parcelite) Parse(data []byte, objectType string) (map[string]interface{}, error) {
	obj, err := p.registry.GetObject(objectType)
	if err != nil {
		return nil, fmt.Errorf("object type not found: %s", objectType)
	}

	// Direct call to schema-aware decoder - that's it!
	return wire.DecodeObject(data, obj, p.registry)
}

// Marshal encodes a map to parcel bytes using schema information
func (p *Parcelite) Marshal(data map[string]interface{}, objectType string) ([]byte, error) {
	obj, err := p.registry.GetObject(objectType)
	if err != nil {
		return nil, fmt.Errorf("object type not found: %s", objectType)
	}

	// Direct call to schema-aware encoder - that's it!
	return wire.EncodeObject(data, obj, p.registry)
}

// MarshalStruct encodes a Go struct to parcel bytes using reflection. The
// object type is the struct's type name; fields map through `parcel` tags.
func (p *Parcelite) MarshalStruct(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("marshal source must be a struct or pointer to struct")
	}
	return p.Marshal(structToMap(rv), rv.Type().Name())
}

// structToMap converts struct fields to the codec's value-map form. Nil
// pointers, slices and maps stay absent so writeIfAbsent semantics apply.
func structToMap(rv reflect.Value) map[string]interface{} {
	rt := rv.Type()
	out := make(map[string]interface{}, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Tag.Get("parcel")
		if name == "" {
			name = field.Name
		}
		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			if fv.IsNil() {
				continue
			}
		}
		out[name] = fv.Interface()
	}
	return out
}

// Unmarshal decodes parcel bytes into a Go struct using reflection
func (p *Parcelite) Unmarshal(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal target must be a pointer to struct")
	}

	objectType := rv.Elem().Type().Name()
	result, err := p.Parse(data, objectType)
	if err != nil {
		return err
	}

	return p.mapToStruct(result, rv.Elem())
}

// mapToStruct maps parsed result to struct fields
func (p *Parcelite) mapToStruct(data map[string]interface{}, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		name := field.Tag.Get("parcel")
		if name == "" {
			name = field.Name
		}

		if value, ok := data[name]; ok {
			if err := p.setFieldValue(fieldValue, value); err != nil {
				return fmt.Errorf("failed to set field %s: %v", field.Name, err)
			}
		}
	}
	return nil
}

// setFieldValue sets a struct field with type conversion
func (p *Parcelite) setFieldValue(fieldValue reflect.Value, value interface{}) error {
	if value == nil {
		return nil
	}

	sourceValue := reflect.ValueOf(value)
	if sourceValue.Type().AssignableTo(fieldValue.Type()) {
		fieldValue.Set(sourceValue)
		return nil
	}

	if sourceValue.Type().ConvertibleTo(fieldValue.Type()) {
		fieldValue.Set(sourceValue.Convert(fieldValue.Type()))
		return nil
	}

	// Generic element slices convert element-by-element.
	if sourceValue.Kind() == reflect.Slice && fieldValue.Kind() == reflect.Slice {
		out := reflect.MakeSlice(fieldValue.Type(), sourceValue.Len(), sourceValue.Len())
		for i := 0; i < sourceValue.Len(); i++ {
			if err := p.setFieldValue(out.Index(i), sourceValue.Index(i).Interface()); err != nil {
				return err
			}
		}
		fieldValue.Set(out)
		return nil
	}

	return fmt.Errorf("cannot convert %T to %s", value, fieldValue.Type())
}

// ===== REGISTRY ACCESS =====

func (p *Parcelite) GetRegistry() *registry.Registry { return p.registry }
func (p *Parcelite) ListObjects() []string           { return p.registry.ListObjects() }
