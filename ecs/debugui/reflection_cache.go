package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name string
	// Type is the field type with one level of pointer removed.
	Type      reflect.Type
	Index     int
	IsPointer bool
	Embedded  bool
}

// ReflectionCache memoises the exported fields of component types.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	fields, _ := rc.fields.LoadOrStore(t, collectFields(t))
	return fields.([]FieldInfo)
}

func collectFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
			Embedded:  field.Anonymous,
		})
	}
	return fields
}

var globalReflectionCache = &ReflectionCache{}
