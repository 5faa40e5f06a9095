package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ocictl/internal/oci"
	"ocictl/pkg/logging"

	"github.com/oracle/oci-go-sdk/v65/common"
	sdkdb "github.com/oracle/oci-go-sdk/v65/database"
)

const logSubsystem = "Database"

// DB systems only support START and STOP; autonomous databases add RESTART.
var (
	validSystemActions     = map[string]struct{}{"START": {}, "STOP": {}}
	validAutonomousActions = map[string]struct{}{"START": {}, "STOP": {}, "RESTART": {}}
)

// ValidSystemActions lists accepted DB system actions in a stable order.
func ValidSystemActions() []string { return []string{"START", "STOP"} }

// ValidAutonomousActions lists accepted autonomous database actions in a
// stable order.
func ValidAutonomousActions() []string { return []string{"START", "STOP", "RESTART"} }

// Service exposes normalized database operations over the SDK client.
type Service struct {
	clients *oci.Clients

	// Test seam; bypasses the client bundle when set.
	databaseAPI oci.DatabaseAPI
}

// NewService creates a database service backed by the shared client bundle.
func NewService(clients *oci.Clients) *Service {
	return &Service{clients: clients}
}

func (s *Service) database() (oci.DatabaseAPI, error) {
	if s.databaseAPI != nil {
		return s.databaseAPI, nil
	}
	if s.clients != nil {
		return s.clients.Database()
	}
	return nil, errors.New("database client not configured")
}

// ListSystems returns DB systems in the compartment, optionally filtered by
// lifecycle state.
func (s *Service) ListSystems(ctx context.Context, compartmentID, lifecycleState string) ([]DBSystem, error) {
	client, err := s.database()
	if err != nil {
		return nil, err
	}

	request := sdkdb.ListDbSystemsRequest{
		CompartmentId: common.String(compartmentID),
	}
	if lifecycleState != "" {
		request.LifecycleState = sdkdb.DbSystemSummaryLifecycleStateEnum(strings.ToUpper(lifecycleState))
	}

	logging.Debug(logSubsystem, "Listing DB systems (compartment: %s, state: %s)", compartmentID, lifecycleState)
	response, err := client.ListDbSystems(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("listing DB systems: %w", err)
	}

	systems := make([]DBSystem, 0, len(response.Items))
	for _, item := range response.Items {
		systems = append(systems, normalizeDBSystemSummary(item))
	}
	logging.Info(logSubsystem, "Found %d DB systems via SDK", len(systems))
	return systems, nil
}

// SystemState returns the current lifecycle state of a DB system.
func (s *Service) SystemState(ctx context.Context, dbSystemID string) (DBSystemState, error) {
	client, err := s.database()
	if err != nil {
		return DBSystemState{}, err
	}

	response, err := client.GetDbSystem(ctx, sdkdb.GetDbSystemRequest{
		DbSystemId: common.String(dbSystemID),
	})
	if err != nil {
		return DBSystemState{}, fmt.Errorf("getting DB system %s: %w", dbSystemID, err)
	}

	system := response.DbSystem
	return DBSystemState{
		DBSystemID:         dbSystemID,
		DBSystemName:       oci.StringValue(system.DisplayName),
		LifecycleState:     string(system.LifecycleState),
		Shape:              oci.StringValue(system.Shape),
		DatabaseEdition:    string(system.DatabaseEdition),
		Version:            oci.StringValue(system.Version),
		NodeCount:          oci.IntValue(system.NodeCount),
		CPUCoreCount:       oci.IntValue(system.CpuCoreCount),
		AvailabilityDomain: oci.StringValue(system.AvailabilityDomain),
		CompartmentID:      oci.StringValue(system.CompartmentId),
		TimeCreated:        oci.FormatSDKTime(system.TimeCreated),
	}, nil
}

// SystemAction submits START or STOP for a DB system and returns once the
// vendor accepts the request. The action is validated before any network
// call.
func (s *Service) SystemAction(ctx context.Context, dbSystemID, action string) (ActionResult, error) {
	action = strings.ToUpper(action)
	if _, ok := validSystemActions[action]; !ok {
		return ActionResult{}, fmt.Errorf("invalid database action %q, valid actions: %s", action, strings.Join(ValidSystemActions(), ", "))
	}

	client, err := s.database()
	if err != nil {
		return ActionResult{}, err
	}

	current, err := client.GetDbSystem(ctx, sdkdb.GetDbSystemRequest{
		DbSystemId: common.String(dbSystemID),
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("getting DB system %s before action: %w", dbSystemID, err)
	}

	logging.Info(logSubsystem, "Submitting %s for DB system '%s' (current state: %s)",
		action, oci.StringValue(current.DbSystem.DisplayName), current.DbSystem.LifecycleState)

	var workRequestID, requestID string
	switch action {
	case "START":
		response, err := client.StartDbSystem(ctx, sdkdb.StartDbSystemRequest{
			DbSystemId: common.String(dbSystemID),
		})
		if err != nil {
			return ActionResult{}, fmt.Errorf("starting DB system %s: %w", dbSystemID, err)
		}
		workRequestID = oci.StringValue(response.OpcWorkRequestId)
		requestID = oci.StringValue(response.OpcRequestId)
	case "STOP":
		response, err := client.StopDbSystem(ctx, sdkdb.StopDbSystemRequest{
			DbSystemId: common.String(dbSystemID),
		})
		if err != nil {
			return ActionResult{}, fmt.Errorf("stopping DB system %s: %w", dbSystemID, err)
		}
		workRequestID = oci.StringValue(response.OpcWorkRequestId)
		requestID = oci.StringValue(response.OpcRequestId)
	}

	return ActionResult{
		DBSystemID:    dbSystemID,
		DBSystemName:  oci.StringValue(current.DbSystem.DisplayName),
		Action:        action,
		PreviousState: string(current.DbSystem.LifecycleState),
		WorkRequestID: workRequestID,
		RequestID:     requestID,
	}, nil
}

// ListAutonomous returns autonomous databases in the compartment, optionally
// filtered by lifecycle state.
func (s *Service) ListAutonomous(ctx context.Context, compartmentID, lifecycleState string) ([]AutonomousDatabase, error) {
	client, err := s.database()
	if err != nil {
		return nil, err
	}

	request := sdkdb.ListAutonomousDatabasesRequest{
		CompartmentId: common.String(compartmentID),
	}
	if lifecycleState != "" {
		request.LifecycleState = sdkdb.AutonomousDatabaseSummaryLifecycleStateEnum(strings.ToUpper(lifecycleState))
	}

	response, err := client.ListAutonomousDatabases(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("listing autonomous databases: %w", err)
	}

	databases := make([]AutonomousDatabase, 0, len(response.Items))
	for _, item := range response.Items {
		databases = append(databases, normalizeAutonomousSummary(item))
	}
	logging.Info(logSubsystem, "Found %d autonomous databases via SDK", len(databases))
	return databases, nil
}

// GetAutonomous returns the full detail shape for one autonomous database.
func (s *Service) GetAutonomous(ctx context.Context, autonomousDatabaseID string) (AutonomousDatabase, error) {
	client, err := s.database()
	if err != nil {
		return AutonomousDatabase{}, err
	}

	response, err := client.GetAutonomousDatabase(ctx, sdkdb.GetAutonomousDatabaseRequest{
		AutonomousDatabaseId: common.String(autonomousDatabaseID),
	})
	if err != nil {
		return AutonomousDatabase{}, fmt.Errorf("getting autonomous database %s: %w", autonomousDatabaseID, err)
	}

	return normalizeAutonomous(response.AutonomousDatabase), nil
}

// AutonomousAction submits START, STOP, or RESTART for an autonomous
// database. The action is validated before any network call.
func (s *Service) AutonomousAction(ctx context.Context, autonomousDatabaseID, action string) (AutonomousActionResult, error) {
	action = strings.ToUpper(action)
	if _, ok := validAutonomousActions[action]; !ok {
		return AutonomousActionResult{}, fmt.Errorf("invalid autonomous database action %q, valid actions: %s", action, strings.Join(ValidAutonomousActions(), ", "))
	}

	client, err := s.database()
	if err != nil {
		return AutonomousActionResult{}, err
	}

	current, err := client.GetAutonomousDatabase(ctx, sdkdb.GetAutonomousDatabaseRequest{
		AutonomousDatabaseId: common.String(autonomousDatabaseID),
	})
	if err != nil {
		return AutonomousActionResult{}, fmt.Errorf("getting autonomous database %s before action: %w", autonomousDatabaseID, err)
	}

	logging.Info(logSubsystem, "Submitting %s for autonomous database '%s' (current state: %s)",
		action, oci.StringValue(current.AutonomousDatabase.DisplayName), current.AutonomousDatabase.LifecycleState)

	var workRequestID, requestID string
	switch action {
	case "START":
		response, err := client.StartAutonomousDatabase(ctx, sdkdb.StartAutonomousDatabaseRequest{
			AutonomousDatabaseId: common.String(autonomousDatabaseID),
		})
		if err != nil {
			return AutonomousActionResult{}, fmt.Errorf("starting autonomous database %s: %w", autonomousDatabaseID, err)
		}
		workRequestID = oci.StringValue(response.OpcWorkRequestId)
		requestID = oci.StringValue(response.OpcRequestId)
	case "STOP":
		response, err := client.StopAutonomousDatabase(ctx, sdkdb.StopAutonomousDatabaseRequest{
			AutonomousDatabaseId: common.String(autonomousDatabaseID),
		})
		if err != nil {
			return AutonomousActionResult{}, fmt.Errorf("stopping autonomous database %s: %w", autonomousDatabaseID, err)
		}
		workRequestID = oci.StringValue(response.OpcWorkRequestId)
		requestID = oci.StringValue(response.OpcRequestId)
	case "RESTART":
		response, err := client.RestartAutonomousDatabase(ctx, sdkdb.RestartAutonomousDatabaseRequest{
			AutonomousDatabaseId: common.String(autonomousDatabaseID),
		})
		if err != nil {
			return AutonomousActionResult{}, fmt.Errorf("restarting autonomous database %s: %w", autonomousDatabaseID, err)
		}
		workRequestID = oci.StringValue(response.OpcWorkRequestId)
		requestID = oci.StringValue(response.OpcRequestId)
	}

	return AutonomousActionResult{
		AutonomousDatabaseID: autonomousDatabaseID,
		DisplayName:          oci.StringValue(current.AutonomousDatabase.DisplayName),
		Action:               action,
		PreviousState:        string(current.AutonomousDatabase.LifecycleState),
		WorkRequestID:        workRequestID,
		RequestID:            requestID,
	}, nil
}

// ScaleAutonomous submits a scale request for CPU cores and/or storage. At
// least one target must be provided and both must be strictly positive;
// validation happens before any network call.
func (s *Service) ScaleAutonomous(ctx context.Context, autonomousDatabaseID string, cpuCoreCount, dataStorageSizeInTBs int) (ScaleResult, error) {
	if cpuCoreCount == 0 && dataStorageSizeInTBs == 0 {
		return ScaleResult{}, errors.New("scale requires cpu_core_count and/or data_storage_size_in_tbs")
	}
	if cpuCoreCount < 0 {
		return ScaleResult{}, fmt.Errorf("cpu_core_count must be positive, got %d", cpuCoreCount)
	}
	if dataStorageSizeInTBs < 0 {
		return ScaleResult{}, fmt.Errorf("data_storage_size_in_tbs must be positive, got %d", dataStorageSizeInTBs)
	}

	client, err := s.database()
	if err != nil {
		return ScaleResult{}, err
	}

	current, err := client.GetAutonomousDatabase(ctx, sdkdb.GetAutonomousDatabaseRequest{
		AutonomousDatabaseId: common.String(autonomousDatabaseID),
	})
	if err != nil {
		return ScaleResult{}, fmt.Errorf("getting autonomous database %s before scale: %w", autonomousDatabaseID, err)
	}

	details := sdkdb.UpdateAutonomousDatabaseDetails{}
	if cpuCoreCount > 0 {
		details.CpuCoreCount = common.Int(cpuCoreCount)
	}
	if dataStorageSizeInTBs > 0 {
		details.DataStorageSizeInTBs = common.Int(dataStorageSizeInTBs)
	}

	logging.Info(logSubsystem, "Scaling autonomous database '%s' (cpu: %d, storage TB: %d)",
		oci.StringValue(current.AutonomousDatabase.DisplayName), cpuCoreCount, dataStorageSizeInTBs)

	response, err := client.UpdateAutonomousDatabase(ctx, sdkdb.UpdateAutonomousDatabaseRequest{
		AutonomousDatabaseId:            common.String(autonomousDatabaseID),
		UpdateAutonomousDatabaseDetails: details,
	})
	if err != nil {
		return ScaleResult{}, fmt.Errorf("scaling autonomous database %s: %w", autonomousDatabaseID, err)
	}

	return ScaleResult{
		AutonomousDatabaseID: autonomousDatabaseID,
		DisplayName:          oci.StringValue(current.AutonomousDatabase.DisplayName),
		PreviousState:        string(current.AutonomousDatabase.LifecycleState),
		CPUCoreCount:         cpuCoreCount,
		DataStorageSizeInTBs: dataStorageSizeInTBs,
		WorkRequestID:        oci.StringValue(response.OpcWorkRequestId),
		RequestID:            oci.StringValue(response.OpcRequestId),
	}, nil
}
