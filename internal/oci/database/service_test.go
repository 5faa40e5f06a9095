package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	sdkdb "github.com/oracle/oci-go-sdk/v65/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDatabaseAPI struct {
	listDbSystemsFn           func(sdkdb.ListDbSystemsRequest) (sdkdb.ListDbSystemsResponse, error)
	getDbSystemFn             func(sdkdb.GetDbSystemRequest) (sdkdb.GetDbSystemResponse, error)
	startDbSystemFn           func(sdkdb.StartDbSystemRequest) (sdkdb.StartDbSystemResponse, error)
	stopDbSystemFn            func(sdkdb.StopDbSystemRequest) (sdkdb.StopDbSystemResponse, error)
	listAutonomousFn          func(sdkdb.ListAutonomousDatabasesRequest) (sdkdb.ListAutonomousDatabasesResponse, error)
	getAutonomousFn           func(sdkdb.GetAutonomousDatabaseRequest) (sdkdb.GetAutonomousDatabaseResponse, error)
	startAutonomousFn         func(sdkdb.StartAutonomousDatabaseRequest) (sdkdb.StartAutonomousDatabaseResponse, error)
	stopAutonomousFn          func(sdkdb.StopAutonomousDatabaseRequest) (sdkdb.StopAutonomousDatabaseResponse, error)
	restartAutonomousFn       func(sdkdb.RestartAutonomousDatabaseRequest) (sdkdb.RestartAutonomousDatabaseResponse, error)
	updateAutonomousFn        func(sdkdb.UpdateAutonomousDatabaseRequest) (sdkdb.UpdateAutonomousDatabaseResponse, error)
	actionCalls               int
}

func (f *fakeDatabaseAPI) ListDbSystems(_ context.Context, req sdkdb.ListDbSystemsRequest) (sdkdb.ListDbSystemsResponse, error) {
	return f.listDbSystemsFn(req)
}

func (f *fakeDatabaseAPI) GetDbSystem(_ context.Context, req sdkdb.GetDbSystemRequest) (sdkdb.GetDbSystemResponse, error) {
	return f.getDbSystemFn(req)
}

func (f *fakeDatabaseAPI) StartDbSystem(_ context.Context, req sdkdb.StartDbSystemRequest) (sdkdb.StartDbSystemResponse, error) {
	f.actionCalls++
	return f.startDbSystemFn(req)
}

func (f *fakeDatabaseAPI) StopDbSystem(_ context.Context, req sdkdb.StopDbSystemRequest) (sdkdb.StopDbSystemResponse, error) {
	f.actionCalls++
	return f.stopDbSystemFn(req)
}

func (f *fakeDatabaseAPI) ListAutonomousDatabases(_ context.Context, req sdkdb.ListAutonomousDatabasesRequest) (sdkdb.ListAutonomousDatabasesResponse, error) {
	return f.listAutonomousFn(req)
}

func (f *fakeDatabaseAPI) GetAutonomousDatabase(_ context.Context, req sdkdb.GetAutonomousDatabaseRequest) (sdkdb.GetAutonomousDatabaseResponse, error) {
	return f.getAutonomousFn(req)
}

func (f *fakeDatabaseAPI) StartAutonomousDatabase(_ context.Context, req sdkdb.StartAutonomousDatabaseRequest) (sdkdb.StartAutonomousDatabaseResponse, error) {
	f.actionCalls++
	return f.startAutonomousFn(req)
}

func (f *fakeDatabaseAPI) StopAutonomousDatabase(_ context.Context, req sdkdb.StopAutonomousDatabaseRequest) (sdkdb.StopAutonomousDatabaseResponse, error) {
	f.actionCalls++
	return f.stopAutonomousFn(req)
}

func (f *fakeDatabaseAPI) RestartAutonomousDatabase(_ context.Context, req sdkdb.RestartAutonomousDatabaseRequest) (sdkdb.RestartAutonomousDatabaseResponse, error) {
	f.actionCalls++
	return f.restartAutonomousFn(req)
}

func (f *fakeDatabaseAPI) UpdateAutonomousDatabase(_ context.Context, req sdkdb.UpdateAutonomousDatabaseRequest) (sdkdb.UpdateAutonomousDatabaseResponse, error) {
	f.actionCalls++
	return f.updateAutonomousFn(req)
}

func testDBSystemSummary(id, name, state string) sdkdb.DbSystemSummary {
	return sdkdb.DbSystemSummary{
		Id:                   common.String(id),
		DisplayName:          common.String(name),
		Shape:                common.String("VM.Standard2.4"),
		LifecycleState:       sdkdb.DbSystemSummaryLifecycleStateEnum(state),
		AvailabilityDomain:   common.String("AD-1"),
		CompartmentId:        common.String("ocid1.compartment.oc1..test"),
		TimeCreated:          &common.SDKTime{Time: time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)},
		DatabaseEdition:      sdkdb.DbSystemSummaryDatabaseEditionEnterpriseEdition,
		Version:              common.String("19.22.0.0"),
		NodeCount:            common.Int(2),
		CpuCoreCount:         common.Int(8),
		DataStorageSizeInGBs: common.Int(512),
		Hostname:             common.String("dbhost"),
		Domain:               common.String("sub.example.com"),
	}
}

func TestListSystems_Normalizes(t *testing.T) {
	fake := &fakeDatabaseAPI{
		listDbSystemsFn: func(req sdkdb.ListDbSystemsRequest) (sdkdb.ListDbSystemsResponse, error) {
			assert.Equal(t, "ocid1.compartment.oc1..test", *req.CompartmentId)
			assert.Equal(t, sdkdb.DbSystemSummaryLifecycleStateAvailable, req.LifecycleState)
			return sdkdb.ListDbSystemsResponse{
				Items: []sdkdb.DbSystemSummary{testDBSystemSummary("ocid1.dbsystem.oc1..a", "prod-db", "AVAILABLE")},
			}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	systems, err := svc.ListSystems(context.Background(), "ocid1.compartment.oc1..test", "available")
	require.NoError(t, err)
	require.Len(t, systems, 1)

	system := systems[0]
	assert.Equal(t, "ocid1.dbsystem.oc1..a", system.ID)
	assert.Equal(t, "prod-db", system.DisplayName)
	assert.Equal(t, "AVAILABLE", system.LifecycleState)
	assert.Equal(t, "ENTERPRISE_EDITION", system.DatabaseEdition)
	assert.Equal(t, 2, system.NodeCount)
	assert.Equal(t, 8, system.CPUCoreCount)
	assert.Equal(t, 512, system.DataStorageSizeInGBs)
	assert.Equal(t, "2024-03-10T08:30:00Z", system.TimeCreated)
}

func TestListSystems_EmptyIsNotNil(t *testing.T) {
	fake := &fakeDatabaseAPI{
		listDbSystemsFn: func(sdkdb.ListDbSystemsRequest) (sdkdb.ListDbSystemsResponse, error) {
			return sdkdb.ListDbSystemsResponse{}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	systems, err := svc.ListSystems(context.Background(), "ocid1.compartment.oc1..test", "")
	require.NoError(t, err)
	assert.NotNil(t, systems)
	assert.Empty(t, systems)
}

func TestSystemAction_InvalidRejectedBeforeNetworkCall(t *testing.T) {
	fake := &fakeDatabaseAPI{
		getDbSystemFn: func(sdkdb.GetDbSystemRequest) (sdkdb.GetDbSystemResponse, error) {
			t.Fatal("GetDbSystem must not be called for an invalid action")
			return sdkdb.GetDbSystemResponse{}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	// RESTART is valid for autonomous databases but not DB systems.
	_, err := svc.SystemAction(context.Background(), "ocid1.dbsystem.oc1..a", "RESTART")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid database action")
	assert.Zero(t, fake.actionCalls)
}

func TestSystemAction_StartReportsWorkRequest(t *testing.T) {
	fake := &fakeDatabaseAPI{
		getDbSystemFn: func(req sdkdb.GetDbSystemRequest) (sdkdb.GetDbSystemResponse, error) {
			return sdkdb.GetDbSystemResponse{
				DbSystem: sdkdb.DbSystem{
					DisplayName:    common.String("prod-db"),
					LifecycleState: sdkdb.DbSystemLifecycleStateStopped,
				},
			}, nil
		},
		startDbSystemFn: func(req sdkdb.StartDbSystemRequest) (sdkdb.StartDbSystemResponse, error) {
			assert.Equal(t, "ocid1.dbsystem.oc1..a", *req.DbSystemId)
			return sdkdb.StartDbSystemResponse{
				OpcWorkRequestId: common.String("ocid1.workrequest.oc1..wr"),
				OpcRequestId:     common.String("req-9"),
			}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	result, err := svc.SystemAction(context.Background(), "ocid1.dbsystem.oc1..a", "start")
	require.NoError(t, err)
	assert.Equal(t, "START", result.Action)
	assert.Equal(t, "prod-db", result.DBSystemName)
	assert.Equal(t, "STOPPED", result.PreviousState)
	assert.Equal(t, "ocid1.workrequest.oc1..wr", result.WorkRequestID)
	assert.Equal(t, 1, fake.actionCalls)
}

func TestAutonomousAction_Restart(t *testing.T) {
	fake := &fakeDatabaseAPI{
		getAutonomousFn: func(req sdkdb.GetAutonomousDatabaseRequest) (sdkdb.GetAutonomousDatabaseResponse, error) {
			return sdkdb.GetAutonomousDatabaseResponse{
				AutonomousDatabase: sdkdb.AutonomousDatabase{
					DisplayName:    common.String("adb-prod"),
					LifecycleState: sdkdb.AutonomousDatabaseLifecycleStateAvailable,
				},
			}, nil
		},
		restartAutonomousFn: func(req sdkdb.RestartAutonomousDatabaseRequest) (sdkdb.RestartAutonomousDatabaseResponse, error) {
			assert.Equal(t, "ocid1.autonomousdatabase.oc1..a", *req.AutonomousDatabaseId)
			return sdkdb.RestartAutonomousDatabaseResponse{
				OpcWorkRequestId: common.String("ocid1.workrequest.oc1..wr2"),
			}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	result, err := svc.AutonomousAction(context.Background(), "ocid1.autonomousdatabase.oc1..a", "restart")
	require.NoError(t, err)
	assert.Equal(t, "RESTART", result.Action)
	assert.Equal(t, "AVAILABLE", result.PreviousState)
	assert.Equal(t, "ocid1.workrequest.oc1..wr2", result.WorkRequestID)
}

func TestAutonomousAction_InvalidRejected(t *testing.T) {
	fake := &fakeDatabaseAPI{}
	svc := &Service{databaseAPI: fake}

	_, err := svc.AutonomousAction(context.Background(), "ocid1.autonomousdatabase.oc1..a", "TERMINATE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid autonomous database action")
	assert.Zero(t, fake.actionCalls)
}

func TestScaleAutonomous_RequiresATarget(t *testing.T) {
	fake := &fakeDatabaseAPI{}
	svc := &Service{databaseAPI: fake}

	_, err := svc.ScaleAutonomous(context.Background(), "ocid1.autonomousdatabase.oc1..a", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scale requires")
	assert.Zero(t, fake.actionCalls)
}

func TestScaleAutonomous_RejectsNegativeValues(t *testing.T) {
	fake := &fakeDatabaseAPI{}
	svc := &Service{databaseAPI: fake}

	_, err := svc.ScaleAutonomous(context.Background(), "ocid1.autonomousdatabase.oc1..a", -2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestScaleAutonomous_SubmitsOnlyRequestedTargets(t *testing.T) {
	fake := &fakeDatabaseAPI{
		getAutonomousFn: func(sdkdb.GetAutonomousDatabaseRequest) (sdkdb.GetAutonomousDatabaseResponse, error) {
			return sdkdb.GetAutonomousDatabaseResponse{
				AutonomousDatabase: sdkdb.AutonomousDatabase{
					DisplayName:    common.String("adb-prod"),
					LifecycleState: sdkdb.AutonomousDatabaseLifecycleStateAvailable,
				},
			}, nil
		},
		updateAutonomousFn: func(req sdkdb.UpdateAutonomousDatabaseRequest) (sdkdb.UpdateAutonomousDatabaseResponse, error) {
			require.NotNil(t, req.CpuCoreCount)
			assert.Equal(t, 4, *req.CpuCoreCount)
			assert.Nil(t, req.DataStorageSizeInTBs)
			return sdkdb.UpdateAutonomousDatabaseResponse{
				OpcWorkRequestId: common.String("ocid1.workrequest.oc1..wr3"),
			}, nil
		},
	}
	svc := &Service{databaseAPI: fake}

	result, err := svc.ScaleAutonomous(context.Background(), "ocid1.autonomousdatabase.oc1..a", 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, result.CPUCoreCount)
	assert.Zero(t, result.DataStorageSizeInTBs)
	assert.Equal(t, "ocid1.workrequest.oc1..wr3", result.WorkRequestID)
}

func TestGetAutonomous_PropagatesError(t *testing.T) {
	fake := &fakeDatabaseAPI{
		getAutonomousFn: func(sdkdb.GetAutonomousDatabaseRequest) (sdkdb.GetAutonomousDatabaseResponse, error) {
			return sdkdb.GetAutonomousDatabaseResponse{}, errors.New("404 NotAuthorizedOrNotFound")
		},
	}
	svc := &Service{databaseAPI: fake}

	_, err := svc.GetAutonomous(context.Background(), "ocid1.autonomousdatabase.oc1..missing")
	assert.ErrorContains(t, err, "NotAuthorizedOrNotFound")
}
