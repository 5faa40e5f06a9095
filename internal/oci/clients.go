package oci

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ocictl/internal/config"
	"ocictl/pkg/logging"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/database"
)

// ComputeAPI is the subset of the core compute client used by ocictl.
// Narrow interfaces keep the services mockable in tests.
type ComputeAPI interface {
	ListInstances(ctx context.Context, request core.ListInstancesRequest) (core.ListInstancesResponse, error)
	GetInstance(ctx context.Context, request core.GetInstanceRequest) (core.GetInstanceResponse, error)
	InstanceAction(ctx context.Context, request core.InstanceActionRequest) (core.InstanceActionResponse, error)
	ListVnicAttachments(ctx context.Context, request core.ListVnicAttachmentsRequest) (core.ListVnicAttachmentsResponse, error)
}

// NetworkAPI is the subset of the virtual network client used by ocictl.
type NetworkAPI interface {
	GetVnic(ctx context.Context, request core.GetVnicRequest) (core.GetVnicResponse, error)
}

// DatabaseAPI is the subset of the database client used by ocictl. It covers
// both DB systems and autonomous databases.
type DatabaseAPI interface {
	ListDbSystems(ctx context.Context, request database.ListDbSystemsRequest) (database.ListDbSystemsResponse, error)
	GetDbSystem(ctx context.Context, request database.GetDbSystemRequest) (database.GetDbSystemResponse, error)
	StartDbSystem(ctx context.Context, request database.StartDbSystemRequest) (database.StartDbSystemResponse, error)
	StopDbSystem(ctx context.Context, request database.StopDbSystemRequest) (database.StopDbSystemResponse, error)
	ListAutonomousDatabases(ctx context.Context, request database.ListAutonomousDatabasesRequest) (database.ListAutonomousDatabasesResponse, error)
	GetAutonomousDatabase(ctx context.Context, request database.GetAutonomousDatabaseRequest) (database.GetAutonomousDatabaseResponse, error)
	StartAutonomousDatabase(ctx context.Context, request database.StartAutonomousDatabaseRequest) (database.StartAutonomousDatabaseResponse, error)
	StopAutonomousDatabase(ctx context.Context, request database.StopAutonomousDatabaseRequest) (database.StopAutonomousDatabaseResponse, error)
	RestartAutonomousDatabase(ctx context.Context, request database.RestartAutonomousDatabaseRequest) (database.RestartAutonomousDatabaseResponse, error)
	UpdateAutonomousDatabase(ctx context.Context, request database.UpdateAutonomousDatabaseRequest) (database.UpdateAutonomousDatabaseResponse, error)
}

// Clients bundles the SDK clients behind lazy initialization. The first
// accessor call loads the credentials file and builds all clients; failures
// are remembered so every subsequent call reports the same error instead of
// re-reading the file.
type Clients struct {
	settings config.OCISettings

	once    sync.Once
	initErr error

	compute  ComputeAPI
	network  NetworkAPI
	database DatabaseAPI

	region  string
	tenancy string
}

// NewClients creates a client bundle for the given settings. No credentials
// are read until the first accessor call.
func NewClients(settings config.OCISettings) *Clients {
	return &Clients{settings: settings}
}

func (c *Clients) init() {
	provider, err := buildConfigurationProvider(c.settings)
	if err != nil {
		c.initErr = fmt.Errorf("loading OCI configuration: %w", err)
		return
	}

	if region, err := provider.Region(); err == nil {
		c.region = region
	}
	if tenancy, err := provider.TenancyOCID(); err == nil {
		c.tenancy = tenancy
	}

	computeClient, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		c.initErr = fmt.Errorf("creating compute client: %w", err)
		return
	}
	networkClient, err := core.NewVirtualNetworkClientWithConfigurationProvider(provider)
	if err != nil {
		c.initErr = fmt.Errorf("creating virtual network client: %w", err)
		return
	}
	databaseClient, err := database.NewDatabaseClientWithConfigurationProvider(provider)
	if err != nil {
		c.initErr = fmt.Errorf("creating database client: %w", err)
		return
	}

	c.compute = computeClient
	c.network = networkClient
	c.database = databaseClient

	logging.Info("OCIClients", "Initialized OCI clients (region: %s)", c.region)
}

func buildConfigurationProvider(settings config.OCISettings) (common.ConfigurationProvider, error) {
	configFile := settings.ConfigFile
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configFile = filepath.Join(home, ".oci", "config")
	}

	profile := settings.Profile
	if profile == "" {
		profile = "DEFAULT"
	}

	return common.ConfigurationProviderFromFileWithProfile(configFile, profile, "")
}

// Compute returns the compute client, initializing the bundle if needed.
func (c *Clients) Compute() (ComputeAPI, error) {
	c.once.Do(c.init)
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.compute, nil
}

// Network returns the virtual network client.
func (c *Clients) Network() (NetworkAPI, error) {
	c.once.Do(c.init)
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.network, nil
}

// Database returns the database client.
func (c *Clients) Database() (DatabaseAPI, error) {
	c.once.Do(c.init)
	if c.initErr != nil {
		return nil, c.initErr
	}
	return c.database, nil
}

// Region reports the configured region, or "unknown" when credentials did
// not load.
func (c *Clients) Region() string {
	c.once.Do(c.init)
	if c.region == "" {
		return "unknown"
	}
	return c.region
}

// TenancyOCID reports the tenancy from the credentials file, or empty when
// credentials did not load.
func (c *Clients) TenancyOCID() string {
	c.once.Do(c.init)
	return c.tenancy
}

// ResolveCompartment picks the compartment scope for a call: the explicit
// argument wins, then the configured compartment, then the tenancy root.
func (c *Clients) ResolveCompartment(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if c.settings.CompartmentID != "" {
		return c.settings.CompartmentID, nil
	}
	if tenancy := c.TenancyOCID(); tenancy != "" {
		return tenancy, nil
	}
	return "", fmt.Errorf("no compartment configured: set %s or pass compartment_id", config.EnvCompartmentID)
}
