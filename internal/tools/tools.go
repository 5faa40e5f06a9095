// Package tools exposes OCI compute, network, and database operations as
// MCP tools. Every handler returns a normalized JSON envelope with at least
// success, summary, and a payload field; errors never cross the tool
// boundary as protocol failures.
package tools

import (
	"context"
	"time"

	"ocictl/internal/config"
	"ocictl/internal/oci"
	"ocictl/internal/oci/compute"
	"ocictl/internal/oci/database"
	"ocictl/internal/occli"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ComputeService is the compute surface consumed by the tool handlers.
type ComputeService interface {
	List(ctx context.Context, compartmentID, lifecycleState string) ([]compute.Instance, error)
	Get(ctx context.Context, instanceID string) (compute.InstanceDetails, error)
	NetworkInterfaces(ctx context.Context, instanceID, compartmentID string) ([]compute.NetworkInterface, error)
	State(ctx context.Context, instanceID string) (compute.StateInfo, error)
	Action(ctx context.Context, instanceID, action string) (compute.ActionResult, error)
}

// DatabaseService is the database surface consumed by the tool handlers.
type DatabaseService interface {
	ListSystems(ctx context.Context, compartmentID, lifecycleState string) ([]database.DBSystem, error)
	SystemState(ctx context.Context, dbSystemID string) (database.DBSystemState, error)
	SystemAction(ctx context.Context, dbSystemID, action string) (database.ActionResult, error)
	ListAutonomous(ctx context.Context, compartmentID, lifecycleState string) ([]database.AutonomousDatabase, error)
	GetAutonomous(ctx context.Context, autonomousDatabaseID string) (database.AutonomousDatabase, error)
	AutonomousAction(ctx context.Context, autonomousDatabaseID, action string) (database.AutonomousActionResult, error)
	ScaleAutonomous(ctx context.Context, autonomousDatabaseID string, cpuCoreCount, dataStorageSizeInTBs int) (database.ScaleResult, error)
}

// ListingFallback is the CLI path of the dual-path accessor. Only listings
// have a fallback; actions and detail lookups require the SDK.
type ListingFallback interface {
	ListInstances(ctx context.Context, compartmentID, lifecycleState string) ([]compute.Instance, error)
	ListDBSystems(ctx context.Context, compartmentID, lifecycleState string) ([]database.DBSystem, error)
	ListAutonomousDatabases(ctx context.Context, compartmentID, lifecycleState string) ([]database.AutonomousDatabase, error)
}

// Scope resolves the compartment and reports connection facts.
type Scope interface {
	ResolveCompartment(explicit string) (string, error)
	Region() string
	TenancyOCID() string
}

// Accessor methods report which path served a result.
const (
	methodSDK = "sdk"
	methodCLI = "cli"
)

// OCITools provides the MCP tools for OCI core services.
type OCITools struct {
	compute  ComputeService
	database DatabaseService
	fallback ListingFallback
	scope    Scope

	now func() time.Time
}

// NewOCITools wires the tools against the shared client bundle and the CLI
// fallback.
func NewOCITools(clients *oci.Clients, cfg config.Config) *OCITools {
	return &OCITools{
		compute:  compute.NewService(clients),
		database: database.NewService(clients),
		fallback: occli.NewFallback(cfg.CLI),
		scope:    clients,
		now:      time.Now,
	}
}

// GetTools returns all tool definitions.
func (ot *OCITools) GetTools() []mcp.Tool {
	tools := []mcp.Tool{}

	tools = append(tools, ot.getComputeTools()...)
	tools = append(tools, ot.getDatabaseSystemTools()...)
	tools = append(tools, ot.getAutonomousDatabaseTools()...)
	tools = append(tools, ot.getDiagnosticTools()...)

	return tools
}

// Register attaches every tool and its handler to the MCP server.
func (ot *OCITools) Register(s *server.MCPServer) {
	handlers := map[string]server.ToolHandlerFunc{
		"list_compute_instances":      ot.HandleListComputeInstances,
		"get_instance_details":        ot.HandleGetInstanceDetails,
		"list_instances_with_network": ot.HandleListInstancesWithNetwork,
		"start_compute_instance":      ot.HandleStartComputeInstance,
		"stop_compute_instance":       ot.HandleStopComputeInstance,
		"restart_compute_instance":    ot.HandleRestartComputeInstance,
		"get_compute_instance_state":  ot.HandleGetComputeInstanceState,

		"list_database_systems":     ot.HandleListDatabaseSystems,
		"start_database_system":     ot.HandleStartDatabaseSystem,
		"stop_database_system":      ot.HandleStopDatabaseSystem,
		"get_database_system_state": ot.HandleGetDatabaseSystemState,

		"list_autonomous_databases":   ot.HandleListAutonomousDatabases,
		"get_autonomous_database":     ot.HandleGetAutonomousDatabase,
		"start_autonomous_database":   ot.HandleStartAutonomousDatabase,
		"stop_autonomous_database":    ot.HandleStopAutonomousDatabase,
		"restart_autonomous_database": ot.HandleRestartAutonomousDatabase,
		"scale_autonomous_database":   ot.HandleScaleAutonomousDatabase,

		"test_oci_connection": ot.HandleTestConnection,
	}

	for _, tool := range ot.GetTools() {
		if handler, ok := handlers[tool.Name]; ok {
			s.AddTool(tool, handler)
		}
	}
}

func (ot *OCITools) getComputeTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("list_compute_instances",
			mcp.WithDescription("List compute instances in a compartment with normalized details"),
			mcp.WithString("compartment_id",
				mcp.Description("Compartment OCID (uses the configured default if not provided)"),
			),
			mcp.WithString("lifecycle_state",
				mcp.Description("Filter by lifecycle state (RUNNING, STOPPED, ...)"),
				mcp.DefaultString("RUNNING"),
			),
		),
		mcp.NewTool("get_instance_details",
			mcp.WithDescription("Get comprehensive information about a compute instance"),
			mcp.WithString("instance_id",
				mcp.Required(),
				mcp.Description("Compute instance OCID"),
			),
			mcp.WithString("compartment_id",
				mcp.Description("Compartment OCID (uses the configured default if not provided)"),
			),
			mcp.WithBoolean("include_network",
				mcp.Description("Include VNIC details"),
				mcp.DefaultBool(true),
			),
		),
		mcp.NewTool("list_instances_with_network",
			mcp.WithDescription("List compute instances enriched with their network interfaces"),
			mcp.WithString("compartment_id",
				mcp.Description("Compartment OCID (uses the configured default if not provided)"),
			),
			mcp.WithString("lifecycle_state",
				mcp.Description("Filter by lifecycle state (RUNNING, STOPPED, ...)"),
				mcp.DefaultString("RUNNING"),
			),
		),
		mcp.NewTool("start_compute_instance",
			mcp.WithDescription("Start a stopped compute instance"),
			mcp.WithString("instance_id",
				mcp.Required(),
				mcp.Description("Compute instance OCID"),
			),
		),
		mcp.NewTool("stop_compute_instance",
			mcp.WithDescription("Stop a running compute instance (graceful by default)"),
			mcp.WithString("instance_id",
				mcp.Required(),
				mcp.Description("Compute instance OCID"),
			),
			mcp.WithBoolean("soft_stop",
				mcp.Description("Graceful shutdown (SOFTSTOP) when true, forced (STOP) when false"),
				mcp.DefaultBool(true),
			),
		),
		mcp.NewTool("restart_compute_instance",
			mcp.WithDescription("Restart a compute instance (graceful by default)"),
			mcp.WithString("instance_id",
				mcp.Required(),
				mcp.Description("Compute instance OCID"),
			),
			mcp.WithBoolean("soft_restart",
				mcp.Description("Graceful restart (SOFTRESET) when true, forced (RESET) when false"),
				mcp.DefaultBool(true),
			),
		),
		mcp.NewTool("get_compute_instance_state",
			mcp.WithDescription("Get the current lifecycle state of a compute instance"),
			mcp.WithString("instance_id",
				mcp.Required(),
				mcp.Description("Compute instance OCID"),
			),
		),
	}
}

func (ot *OCITools) getDatabaseSystemTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("list_database_systems",
			mcp.WithDescription("List database systems in a compartment"),
			mcp.WithString("compartment_id",
				mcp.Description("Compartment OCID (uses the configured default if not provided)"),
			),
			mcp.WithString("lifecycle_state",
				mcp.Description("Filter by lifecycle state (AVAILABLE, STOPPED, ...)"),
			),
		),
		mcp.NewTool("start_database_system",
			mcp.WithDescription("Start a stopped database system"),
			mcp.WithString("db_system_id",
				mcp.Required(),
				mcp.Description("Database system OCID"),
			),
		),
		mcp.NewTool("stop_database_system",
			mcp.WithDescription("Stop a running database system"),
			mcp.WithString("db_system_id",
				mcp.Required(),
				mcp.Description("Database system OCID"),
			),
		),
		mcp.NewTool("get_database_system_state",
			mcp.WithDescription("Get the current lifecycle state of a database system"),
			mcp.WithString("db_system_id",
				mcp.Required(),
				mcp.Description("Database system OCID"),
			),
		),
	}
}

func (ot *OCITools) getAutonomousDatabaseTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("list_autonomous_databases",
			mcp.WithDescription("List autonomous databases in a compartment"),
			mcp.WithString("compartment_id",
				mcp.Description("Compartment OCID (uses the configured default if not provided)"),
			),
			mcp.WithString("lifecycle_state",
				mcp.Description("Filter by lifecycle state (AVAILABLE, STOPPED, ...)"),
			),
		),
		mcp.NewTool("get_autonomous_database",
			mcp.WithDescription("Get details of an autonomous database"),
			mcp.WithString("autonomous_database_id",
				mcp.Required(),
				mcp.Description("Autonomous database OCID"),
			),
		),
		mcp.NewTool("start_autonomous_database",
			mcp.WithDescription("Start a stopped autonomous database"),
			mcp.WithString("autonomous_database_id",
				mcp.Required(),
				mcp.Description("Autonomous database OCID"),
			),
		),
		mcp.NewTool("stop_autonomous_database",
			mcp.WithDescription("Stop a running autonomous database"),
			mcp.WithString("autonomous_database_id",
				mcp.Required(),
				mcp.Description("Autonomous database OCID"),
			),
		),
		mcp.NewTool("restart_autonomous_database",
			mcp.WithDescription("Restart an autonomous database"),
			mcp.WithString("autonomous_database_id",
				mcp.Required(),
				mcp.Description("Autonomous database OCID"),
			),
		),
		mcp.NewTool("scale_autonomous_database",
			mcp.WithDescription("Scale the CPU and/or storage of an autonomous database"),
			mcp.WithString("autonomous_database_id",
				mcp.Required(),
				mcp.Description("Autonomous database OCID"),
			),
			mcp.WithNumber("cpu_core_count",
				mcp.Description("Target CPU core count (must be positive)"),
			),
			mcp.WithNumber("data_storage_size_in_tbs",
				mcp.Description("Target storage size in terabytes (must be positive)"),
			),
		),
	}
}

func (ot *OCITools) getDiagnosticTools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("test_oci_connection",
			mcp.WithDescription("Test OCI connectivity and report per-service availability"),
		),
	}
}
