package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tilegate/ecs"
)

// ComponentInspector shows the components of one entity and lets their
// scalar fields be edited in place. Edited components are marked dirty so
// the systems watching them react.
type ComponentInspector struct {
	selected ecs.EntityId
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selected = selected

	if ci.selected == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	container := storage.Components(ci.selected)
	if container == nil {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selected))
	imgui.Text(fmt.Sprintf("Components: %d", container.Len()))
	imgui.Separator()

	registry := storage.Registry()
	for kind, component := range container.All() {
		if imgui.TreeNodeStr(registry.Name(kind)) {
			if ci.renderComponent(component) {
				storage.MarkDirty(ci.selected, kind)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws the fields of component and reports whether any
// was edited.
func (ci *ComponentInspector) renderComponent(component ecs.Component) bool {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return false
	}
	if len(globalReflectionCache.Fields(val.Type())) == 0 {
		imgui.Text("(tag)")
		return false
	}
	return ci.renderFields(val, "")
}

func (ci *ComponentInspector) renderFields(val reflect.Value, prefix string) bool {
	edited := false
	for _, field := range globalReflectionCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		if ci.renderField(prefix+field.Name, field.Name, fieldVal) {
			edited = true
		}
	}
	return edited
}

// renderField draws one field. id keeps ImGui widget ids unique across
// nested structs.
func (ci *ComponentInspector) renderField(id, name string, val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", id), &v) {
			return setField(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", id), &v) && v >= 0 {
			return setField(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", id), &v) {
			return setField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s##%s", name, id), &v) {
			return setField(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", id), "", &v, imgui.InputTextFlagsNone, nil) {
			return setField(val, v)
		}

	case reflect.Struct:
		edited := false
		if imgui.TreeNodeStr(name) {
			edited = ci.renderFields(val, id+".")
			imgui.TreePop()
		}
		return edited

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val))
	}
	return false
}

// setField stores value into field, converting between widths of the same
// kind. It reports false when field cannot hold value.
func setField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if field.OverflowInt(v) {
				return false
			}
			field.SetInt(v)
			return true
		}
	case uint64:
		switch field.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if field.OverflowUint(v) {
				return false
			}
			field.SetUint(v)
			return true
		}
	case float64:
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			field.SetFloat(v)
			return true
		}
	case bool:
		if field.Kind() == reflect.Bool {
			field.SetBool(v)
			return true
		}
	case string:
		if field.Kind() == reflect.String {
			field.SetString(v)
			return true
		}
	}
	return false
}
