package models

import "time"

// AssetType classifies a bookable resource.
type AssetType string

const (
	AssetProperty   AssetType = "PROPERTY"
	AssetSpot       AssetType = "SPOT"
	AssetVehicle    AssetType = "VEHICLE"
	AssetTrailer    AssetType = "TRAILER"
	AssetEquipment  AssetType = "EQUIPMENT"
	AssetWatercraft AssetType = "WATERCRAFT"
	AssetCrew       AssetType = "CREW"
)

// KnownAssetTypes lists every asset type in display order.
var KnownAssetTypes = []AssetType{
	AssetProperty,
	AssetSpot,
	AssetVehicle,
	AssetTrailer,
	AssetEquipment,
	AssetWatercraft,
	AssetCrew,
}

// CapabilityStatus describes the operational state of a capability unit.
type CapabilityStatus string

const (
	CapabilityOperational CapabilityStatus = "OPERATIONAL"
	CapabilityInoperable  CapabilityStatus = "INOPERABLE"
	CapabilityMaintenance CapabilityStatus = "MAINTENANCE"
)

// Resource is one bookable row on the schedule board. A resource with a
// ParentAssetID is a capability unit nested under its parent asset.
type Resource struct {
	ID               string            `db:"id" json:"id"`
	Name             string            `db:"name" json:"name"`
	AssetType        AssetType         `db:"asset_type" json:"asset_type"`
	ParentAssetID    *string           `db:"parent_asset_id" json:"parent_asset_id,omitempty"`
	CapabilityStatus *CapabilityStatus `db:"capability_status" json:"capability_status,omitempty"`
	UnderMaintenance bool              `db:"under_maintenance" json:"under_maintenance"`
	Inactive         bool              `db:"inactive" json:"inactive"`
	ThumbnailURL     *string           `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}

// IsCapabilityUnit reports whether the resource nests under a parent asset.
func (r Resource) IsCapabilityUnit() bool {
	return r.ParentAssetID != nil && *r.ParentAssetID != ""
}

// ResourceFilter narrows down the resource snapshot.
type ResourceFilter struct {
	Search          string
	AssetTypes      []AssetType
	IncludeInactive bool
}
