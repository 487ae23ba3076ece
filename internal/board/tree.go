package board

import (
	"github.com/shoreline-ops/scheduleboard/internal/models"
)

// Row is one sidebar/grid row: a resource plus its nesting depth.
// Capability units render one indent level under their parent asset;
// the source data nests at most one level deep.
type Row struct {
	Resource models.Resource `json:"resource"`
	Indent   int             `json:"indent"`
}

// Group is an asset-type section of the board in render order.
type Group struct {
	AssetType models.AssetType `json:"asset_type"`
	Rows      []Row            `json:"rows"`
}

// IndexResources orders a flat resource snapshot for rendering: stable
// grouping by asset type, parents in declaration order, and each
// parent's capability units immediately after it in declaration order.
// A capability unit whose parent is missing from the snapshot is
// dropped rather than failing the render. The ordering is
// deterministic for unchanged input; the scroll synchronizer aligns
// sidebar rows to grid rows by index and depends on that.
func IndexResources(resources []models.Resource) []Group {
	byID := make(map[string]models.Resource, len(resources))
	for _, r := range resources {
		byID[r.ID] = r
	}

	children := make(map[string][]models.Resource)
	var parents []models.Resource
	for _, r := range resources {
		if !r.IsCapabilityUnit() {
			parents = append(parents, r)
			continue
		}
		if _, ok := byID[*r.ParentAssetID]; !ok {
			continue
		}
		children[*r.ParentAssetID] = append(children[*r.ParentAssetID], r)
	}

	rowsByType := make(map[models.AssetType][]Row)
	var typeOrder []models.AssetType
	seenType := make(map[models.AssetType]bool)

	for _, parent := range parents {
		if !seenType[parent.AssetType] {
			seenType[parent.AssetType] = true
			typeOrder = append(typeOrder, parent.AssetType)
		}
		rowsByType[parent.AssetType] = append(rowsByType[parent.AssetType], Row{Resource: parent})
		for _, child := range children[parent.ID] {
			rowsByType[parent.AssetType] = append(rowsByType[parent.AssetType], Row{Resource: child, Indent: 1})
		}
	}

	// Known asset types lead in their canonical order; anything the
	// data source invents trails in first-appearance order.
	ordered := make([]models.AssetType, 0, len(typeOrder))
	inKnown := make(map[models.AssetType]bool)
	for _, t := range models.KnownAssetTypes {
		if seenType[t] {
			ordered = append(ordered, t)
			inKnown[t] = true
		}
	}
	for _, t := range typeOrder {
		if !inKnown[t] {
			ordered = append(ordered, t)
		}
	}

	groups := make([]Group, 0, len(ordered))
	for _, t := range ordered {
		groups = append(groups, Group{AssetType: t, Rows: rowsByType[t]})
	}
	return groups
}

// CountDroppedUnits reports how many capability units reference a
// parent absent from the snapshot. Surfaced in snapshot metadata so
// data problems stay visible without breaking the board.
func CountDroppedUnits(resources []models.Resource) int {
	byID := make(map[string]bool, len(resources))
	for _, r := range resources {
		byID[r.ID] = true
	}
	dropped := 0
	for _, r := range resources {
		if r.IsCapabilityUnit() && !byID[*r.ParentAssetID] {
			dropped++
		}
	}
	return dropped
}
