package tools

import (
	"context"
	"fmt"

	"ocictl/internal/oci/database"
	"ocictl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListAutonomousDatabases lists autonomous databases, preferring the
// SDK and falling back to the CLI when the SDK path fails.
func (ot *OCITools) HandleListAutonomousDatabases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lifecycleState := optionalString(req, "lifecycle_state", "")

	compartmentID, err := ot.scope.ResolveCompartment(optionalString(req, "compartment_id", ""))
	if err != nil {
		return ot.failure("Unable to determine compartment", err, nil)
	}

	databases, method, err := ot.listAutonomousDatabases(ctx, compartmentID, lifecycleState)
	if err != nil {
		return ot.failure("Failed to list autonomous databases", err, map[string]interface{}{
			"filters": listFilters(compartmentID, lifecycleState),
		})
	}

	return jsonResult(map[string]interface{}{
		"success":              true,
		"summary":              fmt.Sprintf("Found %d autonomous databases in %s", len(databases), ot.scope.Region()),
		"count":                len(databases),
		"method":               method,
		"filters":              listFilters(compartmentID, lifecycleState),
		"autonomous_databases": databases,
		"retrieved_at":         ot.timestamp(),
	})
}

// HandleGetAutonomousDatabase returns details of one autonomous database.
func (ot *OCITools) HandleGetAutonomousDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	autonomousDatabaseID, err := req.RequireString("autonomous_database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	adb, err := ot.database.GetAutonomous(ctx, autonomousDatabaseID)
	if err != nil {
		return ot.failure("Failed to get autonomous database", err, map[string]interface{}{
			"autonomous_database_id": autonomousDatabaseID,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":             true,
		"summary":             fmt.Sprintf("Autonomous database '%s' (%s) is %s", adb.DisplayName, adb.Workload, adb.LifecycleState),
		"autonomous_database": adb,
		"retrieved_at":        ot.timestamp(),
	})
}

// HandleStartAutonomousDatabase starts a stopped autonomous database.
func (ot *OCITools) HandleStartAutonomousDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleAutonomousAction(ctx, req, "START", "start")
}

// HandleStopAutonomousDatabase stops a running autonomous database.
func (ot *OCITools) HandleStopAutonomousDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleAutonomousAction(ctx, req, "STOP", "stop")
}

// HandleRestartAutonomousDatabase restarts an autonomous database.
func (ot *OCITools) HandleRestartAutonomousDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleAutonomousAction(ctx, req, "RESTART", "restart")
}

func (ot *OCITools) handleAutonomousAction(ctx context.Context, req mcp.CallToolRequest, action, verb string) (*mcp.CallToolResult, error) {
	autonomousDatabaseID, err := req.RequireString("autonomous_database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := ot.database.AutonomousAction(ctx, autonomousDatabaseID, action)
	if err != nil {
		return ot.failure(fmt.Sprintf("Failed to %s autonomous database", verb), err, map[string]interface{}{
			"autonomous_database_id": autonomousDatabaseID,
			"action":                 action,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":        true,
		"summary":        fmt.Sprintf("%s request accepted for autonomous database '%s' (was %s)", result.Action, result.DisplayName, result.PreviousState),
		"action_details": result,
		"initiated_at":   ot.timestamp(),
	})
}

// HandleScaleAutonomousDatabase submits a CPU and/or storage scale request.
func (ot *OCITools) HandleScaleAutonomousDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	autonomousDatabaseID, err := req.RequireString("autonomous_database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cpuCoreCount := optionalInt(req, "cpu_core_count", 0)
	dataStorageSizeInTBs := optionalInt(req, "data_storage_size_in_tbs", 0)

	result, err := ot.database.ScaleAutonomous(ctx, autonomousDatabaseID, cpuCoreCount, dataStorageSizeInTBs)
	if err != nil {
		return ot.failure("Failed to scale autonomous database", err, map[string]interface{}{
			"autonomous_database_id": autonomousDatabaseID,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":        true,
		"summary":        scaleSummary(result),
		"action_details": result,
		"initiated_at":   ot.timestamp(),
	})
}

func scaleSummary(result database.ScaleResult) string {
	summary := fmt.Sprintf("Scale request accepted for autonomous database '%s'", result.DisplayName)
	if result.CPUCoreCount > 0 {
		summary += fmt.Sprintf(", CPU cores -> %d", result.CPUCoreCount)
	}
	if result.DataStorageSizeInTBs > 0 {
		summary += fmt.Sprintf(", storage -> %d TB", result.DataStorageSizeInTBs)
	}
	return summary
}

func (ot *OCITools) listAutonomousDatabases(ctx context.Context, compartmentID, lifecycleState string) ([]database.AutonomousDatabase, string, error) {
	databases, sdkErr := ot.database.ListAutonomous(ctx, compartmentID, lifecycleState)
	if sdkErr == nil {
		return databases, methodSDK, nil
	}
	logging.Warn(logSubsystem, "SDK autonomous database listing failed, trying CLI: %v", sdkErr)

	databases, cliErr := ot.fallback.ListAutonomousDatabases(ctx, compartmentID, lifecycleState)
	if cliErr == nil {
		return databases, methodCLI, nil
	}
	return nil, "", fmt.Errorf("SDK: %v; CLI fallback: %v", sdkErr, cliErr)
}
