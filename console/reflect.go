package console

import (
	"reflect"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// FieldInfo describes an exported struct field reachable by property name.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

type typeFields struct {
	fields []FieldInfo
	byName map[string]int
}

// ReflectionCache memoizes the exported fields of struct types so property
// lookups on every tick do not walk the type again.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type]typeFields
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type]typeFields),
	}
}

// GetFields returns the exported fields of t in declaration order.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	return rc.lookup(t).fields
}

// Field returns the exported field of t called name.
func (rc *ReflectionCache) Field(t reflect.Type, name string) (FieldInfo, bool) {
	tf := rc.lookup(t)
	i, ok := tf.byName[name]
	if !ok {
		return FieldInfo{}, false
	}
	return tf.fields[i], true
}

func (rc *ReflectionCache) lookup(t reflect.Type) typeFields {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	tf := typeFields{byName: make(map[string]int)}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Pointer
			if isPointer {
				fieldType = fieldType.Elem()
			}
			tf.byName[field.Name] = len(tf.fields)
			tf.fields = append(tf.fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  fieldType.Kind() == reflect.Struct,
				IsSlice:   fieldType.Kind() == reflect.Slice,
				IsMap:     fieldType.Kind() == reflect.Map,
			})
		}
	}

	rc.fieldCache[t] = tf
	return tf
}

// Resolve reads property from source. An empty property returns source itself.
// A property is a dot-separated path; each segment names an exported field,
// a string map key or a method taking no arguments.
func (rc *ReflectionCache) Resolve(source any, property string) (any, error) {
	if property == "" {
		return source, nil
	}

	cur := reflect.ValueOf(source)
	for _, segment := range strings.Split(property, ".") {
		next, err := rc.step(cur, segment)
		if err != nil {
			return nil, eris.Wrapf(err, "property %q", property)
		}
		cur = next
	}

	if !cur.IsValid() || !cur.CanInterface() {
		return nil, eris.Wrapf(ErrUnknownProperty, "property %q", property)
	}
	return cur.Interface(), nil
}

func (rc *ReflectionCache) step(v reflect.Value, name string) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, eris.Wrapf(ErrUnknownProperty, "%q on nil", name)
		}
		if m := v.MethodByName(name); isGetter(m) {
			return call(m, name)
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, eris.Wrapf(ErrUnknownProperty, "%q on nil", name)
	}

	if m := v.MethodByName(name); isGetter(m) {
		return call(m, name)
	}

	switch v.Kind() {
	case reflect.Struct:
		field, ok := rc.Field(v.Type(), name)
		if !ok {
			break
		}
		return v.Field(field.Index), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		val := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !val.IsValid() {
			break
		}
		return val, nil
	}

	if v.CanAddr() {
		if m := v.Addr().MethodByName(name); isGetter(m) {
			return call(m, name)
		}
	}
	return reflect.Value{}, eris.Wrapf(ErrUnknownProperty, "%q on %s", name, v.Type())
}

func isGetter(m reflect.Value) bool {
	return m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1
}

// call invokes a getter. A panicking getter is reported as an error.
func call(m reflect.Value, name string) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = reflect.Value{}
			err = eris.Wrapf(ErrUnknownProperty, "%q panicked: %v", name, r)
		}
	}()
	return m.Call(nil)[0], nil
}

// Properties is the cache used to resolve entity properties.
var Properties = NewReflectionCache()
