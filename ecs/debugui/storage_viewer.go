package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sokoban/ecs"
)

type StorageViewerCache struct {
	kinds         []ecs.KindStats
	sortColumn    int
	sortAscending bool
}

func NewStorageViewerComponent() StorageViewerComponent {
	return StorageViewerComponent{
		cache: &StorageViewerCache{
			sortColumn:    1,
			sortAscending: false,
		},
	}
}

// Render draws one row per registered kind. It reports the kind clicked this frame, if any.
func (sv *StorageViewerComponent) Render(storage *ecs.Storage) (string, bool) {
	if !imgui.BeginV("Storage Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return "", false
	}

	stats := sv.refresh(storage)
	imgui.Text(fmt.Sprintf("Entities: %d  Kinds: %d", stats.TotalEntityCount, stats.KindCount))

	maxEntityCount := 0
	for _, kind := range sv.cache.kinds {
		maxEntityCount = max(maxEntityCount, kind.EntityCount)
	}

	var clicked string
	var ok bool

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("KindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.cache.sortColumn = int(spec.ColumnIndex())
			sv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortKinds()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, kind := range sv.cache.kinds {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(kind.Type, sv.selectedKind == kind.Type, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selectedKind = kind.Type
				clicked, ok = kind.Type, true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", kind.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(kind.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked, ok
}

func (sv *StorageViewerComponent) refresh(storage *ecs.Storage) ecs.StorageStats {
	stats := storage.CollectStats()
	sv.cache.kinds = stats.KindBreakdown
	sv.sortKinds()
	return stats
}

func (sv *StorageViewerComponent) sortKinds() {
	slices.SortStableFunc(sv.cache.kinds, func(a, b ecs.KindStats) int {
		var c int
		if sv.cache.sortColumn == 0 {
			c = cmp.Compare(a.Type, b.Type)
		} else {
			c = cmp.Or(cmp.Compare(a.EntityCount, b.EntityCount), cmp.Compare(b.Type, a.Type))
		}
		if !sv.cache.sortAscending {
			return -c
		}
		return c
	})
}
