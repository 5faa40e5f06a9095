package tools

import (
	"context"
	"fmt"

	"ocictl/internal/oci/compute"
	"ocictl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandleListComputeInstances lists instances, preferring the SDK and falling
// back to the CLI when the SDK path fails.
func (ot *OCITools) HandleListComputeInstances(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lifecycleState := optionalString(req, "lifecycle_state", "RUNNING")

	compartmentID, err := ot.scope.ResolveCompartment(optionalString(req, "compartment_id", ""))
	if err != nil {
		return ot.failure("Unable to determine compartment", err, nil)
	}

	instances, method, err := ot.listInstances(ctx, compartmentID, lifecycleState)
	if err != nil {
		return ot.failure("Failed to list compute instances", err, map[string]interface{}{
			"filters": listFilters(compartmentID, lifecycleState),
		})
	}

	return jsonResult(map[string]interface{}{
		"success":      true,
		"summary":      fmt.Sprintf("Found %d %s compute instances in %s", len(instances), lifecycleState, ot.scope.Region()),
		"count":        len(instances),
		"method":       method,
		"filters":      listFilters(compartmentID, lifecycleState),
		"instances":    instances,
		"retrieved_at": ot.timestamp(),
	})
}

// HandleGetInstanceDetails returns full instance details, optionally enriched
// with VNIC information.
func (ot *OCITools) HandleGetInstanceDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireString("instance_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeNetwork := optionalBool(req, "include_network", true)

	details, err := ot.compute.Get(ctx, instanceID)
	if err != nil {
		return ot.failure("Failed to get instance details", err, map[string]interface{}{
			"instance_id": instanceID,
		})
	}

	interfaces := []compute.NetworkInterface{}
	networkIncluded := false
	if includeNetwork {
		compartmentID, resolveErr := ot.scope.ResolveCompartment(optionalString(req, "compartment_id", details.CompartmentID))
		if resolveErr != nil {
			compartmentID = details.CompartmentID
		}
		interfaces, err = ot.compute.NetworkInterfaces(ctx, instanceID, compartmentID)
		if err != nil {
			// Network enrichment is best effort; the instance itself was found.
			logging.Warn(logSubsystem, "Network lookup failed for %s: %v", instanceID, err)
			interfaces = []compute.NetworkInterface{}
		} else {
			networkIncluded = true
		}
	}

	applyPrimaryNetwork(&details.Instance, interfaces)

	return jsonResult(map[string]interface{}{
		"success":               true,
		"summary":               instanceSummary(details.Instance),
		"instance":              details,
		"network_interfaces":    interfaces,
		"network_info_included": networkIncluded,
		"retrieved_at":          ot.timestamp(),
	})
}

// HandleListInstancesWithNetwork lists instances and enriches each with its
// network interfaces. Enrichment needs the SDK; when the listing came from
// the CLI fallback the instances are returned without network data.
func (ot *OCITools) HandleListInstancesWithNetwork(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lifecycleState := optionalString(req, "lifecycle_state", "RUNNING")

	compartmentID, err := ot.scope.ResolveCompartment(optionalString(req, "compartment_id", ""))
	if err != nil {
		return ot.failure("Unable to determine compartment", err, nil)
	}

	instances, method, err := ot.listInstances(ctx, compartmentID, lifecycleState)
	if err != nil {
		return ot.failure("Failed to list compute instances", err, map[string]interface{}{
			"filters": listFilters(compartmentID, lifecycleState),
		})
	}

	networkIncluded := method == methodSDK
	if networkIncluded {
		for i := range instances {
			interfaces, nicErr := ot.compute.NetworkInterfaces(ctx, instances[i].ID, compartmentID)
			if nicErr != nil {
				logging.Warn(logSubsystem, "Network lookup failed for %s: %v", instances[i].ID, nicErr)
				continue
			}
			instances[i].NetworkInterfaces = interfaces
			applyPrimaryNetwork(&instances[i], interfaces)
		}
	}

	return jsonResult(map[string]interface{}{
		"success":               true,
		"summary":               fmt.Sprintf("Found %d %s compute instances with network details", len(instances), lifecycleState),
		"count":                 len(instances),
		"method":                method,
		"network_info_included": networkIncluded,
		"filters":               listFilters(compartmentID, lifecycleState),
		"instances":             instances,
		"retrieved_at":          ot.timestamp(),
	})
}

// HandleStartComputeInstance starts a stopped instance.
func (ot *OCITools) HandleStartComputeInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return ot.handleInstanceAction(ctx, req, "START", "start")
}

// HandleStopComputeInstance stops an instance, gracefully by default.
func (ot *OCITools) HandleStopComputeInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := "SOFTSTOP"
	if !optionalBool(req, "soft_stop", true) {
		action = "STOP"
	}
	return ot.handleInstanceAction(ctx, req, action, "stop")
}

// HandleRestartComputeInstance restarts an instance, gracefully by default.
func (ot *OCITools) HandleRestartComputeInstance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := "SOFTRESET"
	if !optionalBool(req, "soft_restart", true) {
		action = "RESET"
	}
	return ot.handleInstanceAction(ctx, req, action, "restart")
}

func (ot *OCITools) handleInstanceAction(ctx context.Context, req mcp.CallToolRequest, action, verb string) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireString("instance_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := ot.compute.Action(ctx, instanceID, action)
	if err != nil {
		return ot.failure(fmt.Sprintf("Failed to %s instance", verb), err, map[string]interface{}{
			"instance_id": instanceID,
			"action":      action,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":        true,
		"summary":        fmt.Sprintf("%s request accepted for instance '%s' (was %s)", result.Action, result.InstanceName, result.PreviousState),
		"action_details": result,
		"initiated_at":   ot.timestamp(),
	})
}

// HandleGetComputeInstanceState reports the current lifecycle state only.
func (ot *OCITools) HandleGetComputeInstanceState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireString("instance_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := ot.compute.State(ctx, instanceID)
	if err != nil {
		return ot.failure("Failed to get instance state", err, map[string]interface{}{
			"instance_id": instanceID,
		})
	}

	return jsonResult(map[string]interface{}{
		"success":      true,
		"summary":      fmt.Sprintf("Instance '%s' is %s", state.InstanceName, state.LifecycleState),
		"state":        state,
		"retrieved_at": ot.timestamp(),
	})
}

// listInstances is the dual-path listing: SDK first, CLI on SDK failure.
func (ot *OCITools) listInstances(ctx context.Context, compartmentID, lifecycleState string) ([]compute.Instance, string, error) {
	instances, sdkErr := ot.compute.List(ctx, compartmentID, lifecycleState)
	if sdkErr == nil {
		return instances, methodSDK, nil
	}
	logging.Warn(logSubsystem, "SDK instance listing failed, trying CLI: %v", sdkErr)

	instances, cliErr := ot.fallback.ListInstances(ctx, compartmentID, lifecycleState)
	if cliErr == nil {
		return instances, methodCLI, nil
	}
	return nil, "", fmt.Errorf("SDK: %v; CLI fallback: %v", sdkErr, cliErr)
}

func listFilters(compartmentID, lifecycleState string) map[string]interface{} {
	filters := map[string]interface{}{
		"compartment_id": compartmentID,
	}
	if lifecycleState != "" {
		filters["lifecycle_state"] = lifecycleState
	}
	return filters
}

func applyPrimaryNetwork(instance *compute.Instance, interfaces []compute.NetworkInterface) {
	for _, nic := range interfaces {
		if !nic.IsPrimary {
			continue
		}
		instance.PrimaryPrivateIP = nic.PrivateIP
		instance.PrimaryPublicIP = nic.PublicIP
		instance.Hostname = nic.Hostname
		return
	}
}

func instanceSummary(instance compute.Instance) string {
	summary := fmt.Sprintf("Instance '%s' (%s) is %s", instance.Name, instance.Shape, instance.State)
	if instance.PrimaryPrivateIP != "" {
		summary += fmt.Sprintf(", private IP %s", instance.PrimaryPrivateIP)
	}
	if instance.PrimaryPublicIP != "" {
		summary += fmt.Sprintf(", public IP %s", instance.PrimaryPublicIP)
	}
	return summary
}
