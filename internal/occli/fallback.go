package occli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ocictl/internal/config"
	"ocictl/internal/oci"
	"ocictl/internal/oci/compute"
	"ocictl/internal/oci/database"
	"ocictl/pkg/logging"
)

// commandRunner abstracts Runner so fallback parsing is testable against
// fixtures.
type commandRunner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Fallback serves listing operations through the oci CLI, producing the same
// normalized shapes as the SDK path. The CLI does not report the region, so
// region-bearing shapes carry "unknown".
type Fallback struct {
	runner commandRunner
}

// NewFallback creates a CLI fallback using the configured binary.
func NewFallback(settings config.CLISettings) *Fallback {
	return &Fallback{runner: NewRunner(settings)}
}

// The CLI emits hyphenated keys; these mirror shapes exist only to remap
// them into the stable schema.

type cliInstance struct {
	ID                 string                            `json:"id"`
	DisplayName        string                            `json:"display-name"`
	Shape              string                            `json:"shape"`
	LifecycleState     string                            `json:"lifecycle-state"`
	AvailabilityDomain string                            `json:"availability-domain"`
	CompartmentID      string                            `json:"compartment-id"`
	TimeCreated        string                            `json:"time-created"`
	ImageID            string                            `json:"image-id"`
	FaultDomain        string                            `json:"fault-domain"`
	Metadata           map[string]string                 `json:"metadata"`
	FreeformTags       map[string]string                 `json:"freeform-tags"`
	DefinedTags        map[string]map[string]interface{} `json:"defined-tags"`
}

type cliDBSystem struct {
	ID                   string                            `json:"id"`
	DisplayName          string                            `json:"display-name"`
	Shape                string                            `json:"shape"`
	LifecycleState       string                            `json:"lifecycle-state"`
	AvailabilityDomain   string                            `json:"availability-domain"`
	CompartmentID        string                            `json:"compartment-id"`
	TimeCreated          string                            `json:"time-created"`
	DatabaseEdition      string                            `json:"database-edition"`
	Version              string                            `json:"version"`
	NodeCount            int                               `json:"node-count"`
	CPUCoreCount         int                               `json:"cpu-core-count"`
	DataStorageSizeInGBs int                               `json:"data-storage-size-in-gbs"`
	Hostname             string                            `json:"hostname"`
	Domain               string                            `json:"domain"`
	FreeformTags         map[string]string                 `json:"freeform-tags"`
	DefinedTags          map[string]map[string]interface{} `json:"defined-tags"`
}

type cliAutonomousDatabase struct {
	ID                   string                            `json:"id"`
	DisplayName          string                            `json:"display-name"`
	DBName               string                            `json:"db-name"`
	LifecycleState       string                            `json:"lifecycle-state"`
	DBWorkload           string                            `json:"db-workload"`
	DBVersion            string                            `json:"db-version"`
	CPUCoreCount         int                               `json:"cpu-core-count"`
	DataStorageSizeInTBs int                               `json:"data-storage-size-in-tbs"`
	IsFreeTier           bool                              `json:"is-free-tier"`
	IsAutoScalingEnabled bool                              `json:"is-auto-scaling-enabled"`
	LicenseModel         string                            `json:"license-model"`
	CompartmentID        string                            `json:"compartment-id"`
	TimeCreated          string                            `json:"time-created"`
	FreeformTags         map[string]string                 `json:"freeform-tags"`
	DefinedTags          map[string]map[string]interface{} `json:"defined-tags"`
}

// ListInstances lists compute instances via the CLI.
func (f *Fallback) ListInstances(ctx context.Context, compartmentID, lifecycleState string) ([]compute.Instance, error) {
	args := []string{
		"compute", "instance", "list",
		"--compartment-id", compartmentID,
		"--output", "json",
	}
	if lifecycleState != "" {
		args = append(args, "--lifecycle-state", strings.ToUpper(lifecycleState))
	}

	var envelope struct {
		Data []cliInstance `json:"data"`
	}
	if err := f.runList(ctx, args, &envelope); err != nil {
		return nil, err
	}

	instances := make([]compute.Instance, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		metadata := item.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		instances = append(instances, compute.Instance{
			ID:                 item.ID,
			Name:               item.DisplayName,
			Shape:              item.Shape,
			State:              item.LifecycleState,
			AvailabilityDomain: item.AvailabilityDomain,
			CompartmentID:      item.CompartmentID,
			CreatedTime:        item.TimeCreated,
			Region:             "unknown", // the CLI does not report the region
			ImageID:            item.ImageID,
			FaultDomain:        item.FaultDomain,
			Metadata:           metadata,
			Tags:               oci.NormalizeTags(item.FreeformTags, item.DefinedTags),
		})
	}
	logging.Info(logSubsystem, "Found %d instances via CLI", len(instances))
	return instances, nil
}

// ListDBSystems lists database systems via the CLI.
func (f *Fallback) ListDBSystems(ctx context.Context, compartmentID, lifecycleState string) ([]database.DBSystem, error) {
	args := []string{
		"db", "system", "list",
		"--compartment-id", compartmentID,
		"--output", "json",
	}
	if lifecycleState != "" {
		args = append(args, "--lifecycle-state", strings.ToUpper(lifecycleState))
	}

	var envelope struct {
		Data []cliDBSystem `json:"data"`
	}
	if err := f.runList(ctx, args, &envelope); err != nil {
		return nil, err
	}

	systems := make([]database.DBSystem, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		systems = append(systems, database.DBSystem{
			ID:                   item.ID,
			DisplayName:          item.DisplayName,
			Shape:                item.Shape,
			LifecycleState:       item.LifecycleState,
			AvailabilityDomain:   item.AvailabilityDomain,
			CompartmentID:        item.CompartmentID,
			TimeCreated:          item.TimeCreated,
			DatabaseEdition:      item.DatabaseEdition,
			Version:              item.Version,
			NodeCount:            item.NodeCount,
			CPUCoreCount:         item.CPUCoreCount,
			DataStorageSizeInGBs: item.DataStorageSizeInGBs,
			Hostname:             item.Hostname,
			Domain:               item.Domain,
			Tags:                 oci.NormalizeTags(item.FreeformTags, item.DefinedTags),
		})
	}
	logging.Info(logSubsystem, "Found %d DB systems via CLI", len(systems))
	return systems, nil
}

// ListAutonomousDatabases lists autonomous databases via the CLI.
func (f *Fallback) ListAutonomousDatabases(ctx context.Context, compartmentID, lifecycleState string) ([]database.AutonomousDatabase, error) {
	args := []string{
		"db", "autonomous-database", "list",
		"--compartment-id", compartmentID,
		"--output", "json",
	}
	if lifecycleState != "" {
		args = append(args, "--lifecycle-state", strings.ToUpper(lifecycleState))
	}

	var envelope struct {
		Data []cliAutonomousDatabase `json:"data"`
	}
	if err := f.runList(ctx, args, &envelope); err != nil {
		return nil, err
	}

	databases := make([]database.AutonomousDatabase, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		databases = append(databases, database.AutonomousDatabase{
			ID:                   item.ID,
			DisplayName:          item.DisplayName,
			DBName:               item.DBName,
			LifecycleState:       item.LifecycleState,
			Workload:             item.DBWorkload,
			DBVersion:            item.DBVersion,
			CPUCoreCount:         item.CPUCoreCount,
			DataStorageSizeInTBs: item.DataStorageSizeInTBs,
			IsFreeTier:           item.IsFreeTier,
			IsAutoScalingEnabled: item.IsAutoScalingEnabled,
			LicenseModel:         item.LicenseModel,
			CompartmentID:        item.CompartmentID,
			TimeCreated:          item.TimeCreated,
			Tags:                 oci.NormalizeTags(item.FreeformTags, item.DefinedTags),
		})
	}
	logging.Info(logSubsystem, "Found %d autonomous databases via CLI", len(databases))
	return databases, nil
}

func (f *Fallback) runList(ctx context.Context, args []string, envelope interface{}) error {
	out, err := f.runner.Run(ctx, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, envelope); err != nil {
		return fmt.Errorf("parsing CLI output: %w", err)
	}
	return nil
}
