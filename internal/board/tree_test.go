package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoreline-ops/scheduleboard/internal/models"
)

func strPtr(s string) *string { return &s }

func resource(id string, assetType models.AssetType, parent *string) models.Resource {
	return models.Resource{ID: id, Name: "res-" + id, AssetType: assetType, ParentAssetID: parent}
}

func TestIndexResourcesGroupsAndNests(t *testing.T) {
	resources := []models.Resource{
		resource("truck-1", models.AssetVehicle, nil),
		resource("boat-1", models.AssetWatercraft, nil),
		resource("winch-1", models.AssetEquipment, strPtr("truck-1")),
		resource("truck-2", models.AssetVehicle, nil),
		resource("crane-1", models.AssetEquipment, strPtr("truck-1")),
	}

	groups := IndexResources(resources)
	require.Len(t, groups, 2)

	// Known asset types come out in canonical order.
	assert.Equal(t, models.AssetVehicle, groups[0].AssetType)
	assert.Equal(t, models.AssetWatercraft, groups[1].AssetType)

	vehicles := groups[0].Rows
	require.Len(t, vehicles, 4)
	assert.Equal(t, "truck-1", vehicles[0].Resource.ID)
	assert.Equal(t, 0, vehicles[0].Indent)
	// Capability units follow their parent immediately, in declaration order.
	assert.Equal(t, "winch-1", vehicles[1].Resource.ID)
	assert.Equal(t, 1, vehicles[1].Indent)
	assert.Equal(t, "crane-1", vehicles[2].Resource.ID)
	assert.Equal(t, 1, vehicles[2].Indent)
	assert.Equal(t, "truck-2", vehicles[3].Resource.ID)
}

func TestIndexResourcesDropsOrphanedUnits(t *testing.T) {
	resources := []models.Resource{
		resource("boat-1", models.AssetWatercraft, nil),
		resource("motor-1", models.AssetEquipment, strPtr("ghost")),
	}

	groups := IndexResources(resources)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Rows, 1)
	assert.Equal(t, "boat-1", groups[0].Rows[0].Resource.ID)

	assert.Equal(t, 1, CountDroppedUnits(resources))
}

func TestIndexResourcesUnknownTypesTrail(t *testing.T) {
	resources := []models.Resource{
		resource("x-1", models.AssetType("DRONE"), nil),
		resource("boat-1", models.AssetWatercraft, nil),
	}

	groups := IndexResources(resources)
	require.Len(t, groups, 2)
	assert.Equal(t, models.AssetWatercraft, groups[0].AssetType)
	assert.Equal(t, models.AssetType("DRONE"), groups[1].AssetType)
}

// Row order must be stable across re-renders: the scroll synchronizer
// aligns sidebar rows to grid rows by index.
func TestIndexResourcesStable(t *testing.T) {
	resources := []models.Resource{
		resource("truck-1", models.AssetVehicle, nil),
		resource("winch-1", models.AssetEquipment, strPtr("truck-1")),
		resource("spot-1", models.AssetSpot, nil),
	}

	first := IndexResources(resources)
	second := IndexResources(resources)
	assert.Equal(t, first, second)
}

func TestIndexResourcesEmpty(t *testing.T) {
	assert.Empty(t, IndexResources(nil))
}
