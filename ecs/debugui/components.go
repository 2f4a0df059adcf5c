package debugui

import "github.com/plus3/downbeat/ecs"

// EntityBrowserComponent is the state of an entity browser window.
type EntityBrowserComponent struct {
	selectedEntityID   ecs.EntityID
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

// SystemInspectorComponent is the state of a system inspector window.
type SystemInspectorComponent struct {
	showStats bool
}

// PerformanceStatsComponent is the state of a performance overlay.
type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
