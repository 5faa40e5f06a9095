package tools

import (
	"context"
	"fmt"

	"ocictl/internal/oci/database"
	"ocictl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListDatabaseSystems lists DB systems, preferring the SDK and falling
// back to the CLI when the SDK path fails.
func (ot *OCITools) HandleListDatabaseSystems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lifecycleState := optionalString(req, "lifecycle_state", "")

	compartmentID, err := ot.scope.ResolveCompartment(optionalString(req, "compartment_id", ""))
	if err != nil {
		return ot.failure("Unable to determine compartment", err, nil)
	}

	systems, method, err := ot.listDBSystems(ctx, compartmentID, lifecycleState)
	if err != nil {
		return ot.failure("Failed to list database systems", err, map[string]interface{}{
			"filters": listFilters(compartmentID, lifecycleState),
		})
	}

	return jsonResult(map[string]interface{}{
		"success":      true,
		"summary":      fmt.Sprintf("Found %d database systems in %s", len(systems), ot.scope.Region()),
		"count":        len(systems),
		"method":       method,
		"filters":      listFilters(compartmentID, lifecycleState),
		"db_systems":   systems,
		"retrieved_at": ot.timestamp(),
	})
}

// HandleStartDatabaseSystem starts a stopped DB system.
func (ot *OCITools) HandleStartDatabaseSystem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleSystemAction(ctx, req, "START", "start")
}

// HandleStopDatabaseSystem stops a running DB system.
func (ot *OCITools) HandleStopDatabaseSystem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleSystemAction(ctx, req, "STOP", "stop")
}

func (ot *OCITools) handleSystemAction(ctx context.Context, req mcp.CallToolRequest, action, verb string) (*mcp.CallToolResult, error) {
	dbSystemID, err := req.RequireString("db_system_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := ot.database.SystemAction(ctx, dbSystemID, action)
	if err != nil {
		return ot.failure(fmt.Sprintf("Failed to %s database system", verb), err, map[string]interface{}{
			"db_system_id": dbSystemID,
			"action":       action,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":        true,
		"summary":        fmt.Sprintf("%s request accepted for database system '%s' (was %s)", result.Action, result.DBSystemName, result.PreviousState),
		"action_details": result,
		"initiated_at":   ot.timestamp(),
	})
}

// HandleGetDatabaseSystemState reports the current lifecycle state only.
func (ot *OCITools) HandleGetDatabaseSystemState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbSystemID, err := req.RequireString("db_system_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := ot.database.SystemState(ctx, dbSystemID)
	if err != nil {
		return ot.failure("Failed to get database system state", err, map[string]interface{}{
			"db_system_id": dbSystemID,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":      true,
		"summary":      fmt.Sprintf("Database system '%s' is %s", state.DBSystemName, state.LifecycleState),
		"state":        state,
		"retrieved_at": ot.timestamp(),
	})
}

func (ot *OCITools) listDBSystems(ctx context.Context, compartmentID, lifecycleState string) ([]database.DBSystem, string, error) {
	systems, sdkErr := ot.database.ListSystems(ctx, compartmentID, lifecycleState)
	if sdkErr == nil {
		return systems, methodSDK, nil
	}
	logging.Warn(logSubsystem, "SDK DB system listing failed, trying CLI: %v", sdkErr)

	systems, cliErr := ot.fallback.ListDBSystems(ctx, compartmentID, lifecycleState)
	if cliErr == nil {
		return systems, methodCLI, nil
	}
	return nil, "", fmt.Errorf("SDK: %v; CLI fallback: %v", sdkErr, cliErr)
}
