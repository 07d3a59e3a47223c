package registry

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/anirudhraja/parcelite/schema"
)

// Registry stores object schema descriptors. The codec looks these up when
// it needs to encode or decode an object, including nested ones.
type Registry struct {
	repo    *schema.Repo
	objects map[string]*schema.Object // fully qualified name -> object
}

func NewRegistry() *Registry {
	return &Registry{
		repo:    &schema.Repo{Files: make(map[string]*schema.File)},
		objects: make(map[string]*schema.Object),
	}
}

// RegisterObject validates and stores a single object descriptor under its
// plain name.
func (r *Registry) RegisterObject(obj *schema.Object) error {
	return r.register("", obj)
}

// RegisterFile validates and stores every object in a schema file,
// qualified by the file's package name.
func (r *Registry) RegisterFile(file *schema.File) error {
	for _, obj := range file.Objects {
		if err := r.register(file.Package, obj); err != nil {
			return errors.Wrapf(err, "file %s", file.Name)
		}
	}
	r.repo.Files[file.Name] = file
	return nil
}

func (r *Registry) register(pkg string, obj *schema.Object) error {
	if err := ValidateObject(obj); err != nil {
		return errors.Wrapf(err, "object %s", obj.Name)
	}
	fullName := r.getFullName(pkg, obj.Name)
	if _, exists := r.objects[fullName]; exists {
		return errors.Errorf("object already registered: %s", fullName)
	}
	r.objects[fullName] = obj
	return nil
}

func (r *Registry) getFullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// GetObject retrieves an object descriptor by name
func (r *Registry) GetObject(name string) (*schema.Object, error) {
	if obj, exists := r.objects[name]; exists {
		return obj, nil
	}

	// Try without package prefix
	for fullName, obj := range r.objects {
		if strings.HasSuffix(fullName, "."+name) {
			return obj, nil
		}
	}

	return nil, errors.Errorf("object not found: %s", name)
}

// ListObjects returns all registered object names
func (r *Registry) ListObjects() []string {
	var names []string
	for name := range r.objects {
		names = append(names, name)
	}
	return names
}

// ValidateObject checks the structural invariants of an object descriptor:
// unique in-range field ids, the reserved-id non-reuse rule, well-formed
// field types and resolvable removed-param migrations.
func ValidateObject(obj *schema.Object) error {
	if obj == nil || obj.Name == "" {
		return errors.New("object must have a name")
	}

	// The reserved set: explicitly declared retired ids plus every removed
	// param id. A future field may never take one of these.
	reserved := make(map[int32]bool, len(obj.ReservedIDs)+len(obj.RemovedParams))
	for _, id := range obj.ReservedIDs {
		reserved[id] = true
	}
	for _, rp := range obj.RemovedParams {
		reserved[rp.ID] = true
	}

	seenIDs := make(map[int32]bool, len(obj.Fields))
	seenNames := make(map[string]bool, len(obj.Fields))
	for _, f := range obj.Fields {
		if f.Name == "" {
			return errors.New("field must have a name")
		}
		if seenNames[f.Name] {
			return errors.Errorf("duplicate field name: %s", f.Name)
		}
		seenNames[f.Name] = true

		if f.ID <= 0 || f.ID > schema.MaxFieldID {
			return errors.Errorf("field %s: id %d out of range", f.Name, f.ID)
		}
		if f.ID == schema.VersionFieldID || f.ID == schema.IndicatorFieldID {
			return errors.Errorf("field %s: id %d is reserved for codec use", f.Name, f.ID)
		}
		if seenIDs[f.ID] {
			return errors.Errorf("field %s: duplicate id %d", f.Name, f.ID)
		}
		seenIDs[f.ID] = true

		if reserved[f.ID] {
			return errors.Errorf("field %s: id %d was retired by a past schema revision and must never be reassigned", f.Name, f.ID)
		}

		if err := validateType(&f.Type); err != nil {
			return errors.Wrapf(err, "field %s", f.Name)
		}
	}

	for _, rp := range obj.RemovedParams {
		if rp.ID <= 0 || rp.ID > schema.MaxFieldID {
			return errors.Errorf("removed param id %d out of range", rp.ID)
		}
		if rp.Target == "" {
			return errors.Errorf("removed param %d must name a target field", rp.ID)
		}
		if !seenNames[rp.Target] {
			return errors.Errorf("removed param %d targets unknown field %s", rp.ID, rp.Target)
		}
		if err := validateType(&rp.Type); err != nil {
			return errors.Wrapf(err, "removed param %d", rp.ID)
		}
		switch rp.Convert {
		case schema.ConvertNone, schema.ConvertStringToInt64, schema.ConvertStringToInt32,
			schema.ConvertInt32ToInt64, schema.ConvertInt64ToString:
		default:
			return errors.Errorf("removed param %d: unknown conversion %q", rp.ID, rp.Convert)
		}
	}

	return nil
}

func validateType(t *schema.FieldType) error {
	if t.Boxed && !schema.IsScalar(t.Kind) {
		return errors.Errorf("kind %s cannot be boxed", t.Kind)
	}
	switch t.Kind {
	case schema.KindBool, schema.KindByte, schema.KindShort, schema.KindChar,
		schema.KindInt32, schema.KindInt64, schema.KindUint32, schema.KindUint64,
		schema.KindFloat32, schema.KindFloat64, schema.KindString, schema.KindBytes,
		schema.KindBigInt, schema.KindBigDecimal:
		return nil
	case schema.KindObject:
		if t.ObjectType == "" {
			return errors.New("object kind requires an object type name")
		}
		return nil
	case schema.KindList:
		if t.Element == nil {
			return errors.New("list kind requires an element type")
		}
		if t.Element.Boxed {
			return errors.New("list elements cannot be boxed")
		}
		return validateType(t.Element)
	case schema.KindSparseMap:
		if t.Value == nil {
			return errors.New("sparse map kind requires a value type")
		}
		if t.Value.Boxed {
			return errors.New("sparse map values cannot be boxed")
		}
		return validateType(t.Value)
	default:
		return errors.Errorf("unknown kind: %s", t.Kind)
	}
}
