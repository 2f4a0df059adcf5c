package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/downbeat/ecs"
)

// NewSystemInspectorComponent creates a system inspector window.
func NewSystemInspectorComponent() SystemInspectorComponent {
	return SystemInspectorComponent{showStats: true}
}

// Render draws a table of every registered system with its predicate,
// frequency, tracked entity count and a live enable toggle. The system
// rows are paired with the registry's execution stats by position, which
// both share (registration order).
func (si *SystemInspectorComponent) Render(registry *ecs.Registry) {
	if !imgui.BeginV("System Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := registry.CollectStats()
	systems := registry.Systems()

	imgui.Text(fmt.Sprintf("Tick: %d", stats.Tick))
	imgui.Checkbox("Show execution stats", &si.showStats)

	columns := int32(5)
	if si.showStats {
		columns = 7
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", columns, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Requires")
		imgui.TableSetupColumn("Frequency")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Enabled")
		if si.showStats {
			imgui.TableSetupColumn("Updates")
			imgui.TableSetupColumn("Avg")
		}
		imgui.TableHeadersRow()

		for i, s := range systems {
			sys := stats.Systems[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(sys.Name)

			imgui.TableNextColumn()
			imgui.Text(requiresLabel(s))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.Frequency))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.EntityCount))

			imgui.TableNextColumn()
			enabled := sys.Enabled
			if imgui.Checkbox(fmt.Sprintf("##enabled%d", i), &enabled) {
				setEnabled(s, enabled)
			}

			if si.showStats {
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.UpdateCount))

				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

// enableSetter is satisfied by any system embedding ecs.SystemBase.
type enableSetter interface {
	SetEnabled(bool)
	Requires() []string
}

func setEnabled(s ecs.System, enabled bool) {
	if es, ok := s.(enableSetter); ok {
		es.SetEnabled(enabled)
	}
}

func requiresLabel(s ecs.System) string {
	es, ok := s.(enableSetter)
	if !ok || len(es.Requires()) == 0 {
		return "(all)"
	}
	return strings.Join(es.Requires(), ", ")
}
