package database

import (
	"ocictl/internal/oci"

	sdkdb "github.com/oracle/oci-go-sdk/v65/database"
)

// DBSystem is the normalized database system shape.
type DBSystem struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"display_name"`
	Shape                string   `json:"shape"`
	LifecycleState       string   `json:"lifecycle_state"`
	AvailabilityDomain   string   `json:"availability_domain"`
	CompartmentID        string   `json:"compartment_id"`
	TimeCreated          string   `json:"time_created,omitempty"`
	DatabaseEdition      string   `json:"database_edition"`
	Version              string   `json:"version,omitempty"`
	NodeCount            int      `json:"node_count"`
	CPUCoreCount         int      `json:"cpu_core_count"`
	DataStorageSizeInGBs int      `json:"data_storage_size_in_gbs"`
	Hostname             string   `json:"hostname,omitempty"`
	Domain               string   `json:"domain,omitempty"`
	Tags                 oci.Tags `json:"tags"`
}

// DBSystemState is the minimal lifecycle-state report for one DB system.
type DBSystemState struct {
	DBSystemID         string `json:"db_system_id"`
	DBSystemName       string `json:"db_system_name"`
	LifecycleState     string `json:"lifecycle_state"`
	Shape              string `json:"shape"`
	DatabaseEdition    string `json:"database_edition"`
	Version            string `json:"version,omitempty"`
	NodeCount          int    `json:"node_count"`
	CPUCoreCount       int    `json:"cpu_core_count"`
	AvailabilityDomain string `json:"availability_domain"`
	CompartmentID      string `json:"compartment_id"`
	TimeCreated        string `json:"time_created,omitempty"`
}

// ActionResult reports an accepted DB system lifecycle action.
type ActionResult struct {
	DBSystemID    string `json:"db_system_id"`
	DBSystemName  string `json:"db_system_name"`
	Action        string `json:"action"`
	PreviousState string `json:"previous_state"`
	WorkRequestID string `json:"work_request_id,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

// AutonomousDatabase is the normalized autonomous database shape.
type AutonomousDatabase struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"display_name"`
	DBName               string   `json:"db_name"`
	LifecycleState       string   `json:"lifecycle_state"`
	Workload             string   `json:"workload,omitempty"`
	DBVersion            string   `json:"db_version,omitempty"`
	CPUCoreCount         int      `json:"cpu_core_count"`
	DataStorageSizeInTBs int      `json:"data_storage_size_in_tbs"`
	IsFreeTier           bool     `json:"is_free_tier"`
	IsAutoScalingEnabled bool     `json:"is_auto_scaling_enabled"`
	LicenseModel         string   `json:"license_model,omitempty"`
	CompartmentID        string   `json:"compartment_id"`
	TimeCreated          string   `json:"time_created,omitempty"`
	Tags                 oci.Tags `json:"tags"`
}

// AutonomousActionResult reports an accepted autonomous database action.
type AutonomousActionResult struct {
	AutonomousDatabaseID string `json:"autonomous_database_id"`
	DisplayName          string `json:"display_name"`
	Action               string `json:"action"`
	PreviousState        string `json:"previous_state"`
	WorkRequestID        string `json:"work_request_id,omitempty"`
	RequestID            string `json:"request_id,omitempty"`
}

// ScaleResult reports an accepted scale request. The requested values echo
// back what was submitted; the vendor applies them asynchronously.
type ScaleResult struct {
	AutonomousDatabaseID string `json:"autonomous_database_id"`
	DisplayName          string `json:"display_name"`
	PreviousState        string `json:"previous_state"`
	CPUCoreCount         int    `json:"cpu_core_count,omitempty"`
	DataStorageSizeInTBs int    `json:"data_storage_size_in_tbs,omitempty"`
	WorkRequestID        string `json:"work_request_id,omitempty"`
	RequestID            string `json:"request_id,omitempty"`
}

func normalizeDBSystemSummary(in sdkdb.DbSystemSummary) DBSystem {
	return DBSystem{
		ID:                   oci.StringValue(in.Id),
		DisplayName:          oci.StringValue(in.DisplayName),
		Shape:                oci.StringValue(in.Shape),
		LifecycleState:       string(in.LifecycleState),
		AvailabilityDomain:   oci.StringValue(in.AvailabilityDomain),
		CompartmentID:        oci.StringValue(in.CompartmentId),
		TimeCreated:          oci.FormatSDKTime(in.TimeCreated),
		DatabaseEdition:      string(in.DatabaseEdition),
		Version:              oci.StringValue(in.Version),
		NodeCount:            oci.IntValue(in.NodeCount),
		CPUCoreCount:         oci.IntValue(in.CpuCoreCount),
		DataStorageSizeInGBs: oci.IntValue(in.DataStorageSizeInGBs),
		Hostname:             oci.StringValue(in.Hostname),
		Domain:               oci.StringValue(in.Domain),
		Tags:                 oci.NormalizeTags(in.FreeformTags, in.DefinedTags),
	}
}

func normalizeAutonomousSummary(in sdkdb.AutonomousDatabaseSummary) AutonomousDatabase {
	return AutonomousDatabase{
		ID:                   oci.StringValue(in.Id),
		DisplayName:          oci.StringValue(in.DisplayName),
		DBName:               oci.StringValue(in.DbName),
		LifecycleState:       string(in.LifecycleState),
		Workload:             string(in.DbWorkload),
		DBVersion:            oci.StringValue(in.DbVersion),
		CPUCoreCount:         oci.IntValue(in.CpuCoreCount),
		DataStorageSizeInTBs: oci.IntValue(in.DataStorageSizeInTBs),
		IsFreeTier:           oci.BoolValue(in.IsFreeTier),
		IsAutoScalingEnabled: oci.BoolValue(in.IsAutoScalingEnabled),
		LicenseModel:         string(in.LicenseModel),
		CompartmentID:        oci.StringValue(in.CompartmentId),
		TimeCreated:          oci.FormatSDKTime(in.TimeCreated),
		Tags:                 oci.NormalizeTags(in.FreeformTags, in.DefinedTags),
	}
}

func normalizeAutonomous(in sdkdb.AutonomousDatabase) AutonomousDatabase {
	return AutonomousDatabase{
		ID:                   oci.StringValue(in.Id),
		DisplayName:          oci.StringValue(in.DisplayName),
		DBName:               oci.StringValue(in.DbName),
		LifecycleState:       string(in.LifecycleState),
		Workload:             string(in.DbWorkload),
		DBVersion:            oci.StringValue(in.DbVersion),
		CPUCoreCount:         oci.IntValue(in.CpuCoreCount),
		DataStorageSizeInTBs: oci.IntValue(in.DataStorageSizeInTBs),
		IsFreeTier:           oci.BoolValue(in.IsFreeTier),
		IsAutoScalingEnabled: oci.BoolValue(in.IsAutoScalingEnabled),
		LicenseModel:         string(in.LicenseModel),
		CompartmentID:        oci.StringValue(in.CompartmentId),
		TimeCreated:          oci.FormatSDKTime(in.TimeCreated),
		Tags:                 oci.NormalizeTags(in.FreeformTags, in.DefinedTags),
	}
}
