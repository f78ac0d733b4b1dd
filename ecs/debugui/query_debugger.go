package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs"
)

// maxListedMatches caps the ids printed under "Matching Entities".
const maxListedMatches = 64

type QueryDebuggerCache struct {
	componentTypes []reflect.Type
	kindCount      int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			kindCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(storage)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		name := compType.String()
		selected := qd.selectedComponentTypes[name]
		if imgui.Checkbox(name, &selected) {
			if selected {
				qd.selectedComponentTypes[name] = true
			} else {
				delete(qd.selectedComponentTypes, name)
			}
		}
	}

	imgui.Separator()

	selectedTypes := qd.selectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := matchingEntities(storage, selectedTypes)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Ids") {
		listed := matching[:min(len(matching), maxListedMatches)]
		for _, id := range listed {
			imgui.BulletText(fmt.Sprintf("%d  %s", id, kindNames(storage, id)))
		}
		if len(matching) > len(listed) {
			imgui.Text(fmt.Sprintf("... and %d more", len(matching)-len(listed)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	types := storage.Registry().Types()
	if qd.cache.kindCount == len(types) {
		return
	}
	qd.cache.kindCount = len(types)
	qd.cache.componentTypes = slices.SortedFunc(slices.Values(types), func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

func (qd *QueryDebuggerComponent) selectedTypes() []reflect.Type {
	var selected []reflect.Type
	for _, t := range qd.cache.componentTypes {
		if qd.selectedComponentTypes[t.String()] {
			selected = append(selected, t)
		}
	}
	return selected
}

// matchingEntities returns, in creation order, the entities holding every one of required.
func matchingEntities(storage *ecs.Storage, required []reflect.Type) []ecs.EntityId {
	var matching []ecs.EntityId
	for _, id := range storage.Entities() {
		if hasAll(storage, id, required) {
			matching = append(matching, id)
		}
	}
	return matching
}

func kindNames(storage *ecs.Storage, id ecs.EntityId) string {
	types := storage.ComponentTypes(id)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func hasAll(storage *ecs.Storage, id ecs.EntityId, required []reflect.Type) bool {
	for _, t := range required {
		if !storage.HasComponent(id, t) {
			return false
		}
	}
	return true
}
