package occli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	output   []byte
	err      error
	lastArgs []string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.lastArgs = args
	return f.output, f.err
}

const instanceListFixture = `{
  "data": [
    {
      "id": "ocid1.instance.oc1..a",
      "display-name": "web-1",
      "shape": "VM.Standard.E4.Flex",
      "lifecycle-state": "RUNNING",
      "availability-domain": "AD-1",
      "compartment-id": "ocid1.compartment.oc1..test",
      "time-created": "2024-05-01T12:00:00.000000+00:00",
      "image-id": "ocid1.image.oc1..img",
      "fault-domain": "FAULT-DOMAIN-1",
      "metadata": {"ssh_authorized_keys": "ssh-rsa AAAA"},
      "freeform-tags": {"env": "prod"},
      "defined-tags": {"Operations": {"CostCenter": "42"}}
    }
  ]
}`

func TestListInstances_RemapsHyphenatedFields(t *testing.T) {
	runner := &fakeRunner{output: []byte(instanceListFixture)}
	fallback := &Fallback{runner: runner}

	instances, err := fallback.ListInstances(context.Background(), "ocid1.compartment.oc1..test", "running")
	require.NoError(t, err)
	require.Len(t, instances, 1)

	assert.Equal(t, []string{
		"compute", "instance", "list",
		"--compartment-id", "ocid1.compartment.oc1..test",
		"--output", "json",
		"--lifecycle-state", "RUNNING",
	}, runner.lastArgs)

	instance := instances[0]
	assert.Equal(t, "ocid1.instance.oc1..a", instance.ID)
	assert.Equal(t, "web-1", instance.Name)
	assert.Equal(t, "VM.Standard.E4.Flex", instance.Shape)
	assert.Equal(t, "RUNNING", instance.State)
	assert.Equal(t, "AD-1", instance.AvailabilityDomain)
	assert.Equal(t, "ocid1.compartment.oc1..test", instance.CompartmentID)
	assert.Equal(t, "ocid1.image.oc1..img", instance.ImageID)
	// Region is not available from CLI output.
	assert.Equal(t, "unknown", instance.Region)
	assert.Equal(t, map[string]string{"env": "prod"}, instance.Tags.Freeform)
	assert.Equal(t, "42", instance.Tags.Defined["Operations"]["CostCenter"])
}

func TestListInstances_EmptyDataIsSuccess(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"data": []}`)}
	fallback := &Fallback{runner: runner}

	instances, err := fallback.ListInstances(context.Background(), "ocid1.compartment.oc1..test", "")
	require.NoError(t, err)
	assert.NotNil(t, instances)
	assert.Empty(t, instances)
	// No state filter means no --lifecycle-state argument.
	assert.NotContains(t, runner.lastArgs, "--lifecycle-state")
}

func TestListInstances_RunnerFailurePropagates(t *testing.T) {
	runner := &fakeRunner{err: errors.New("oci CLI produced no output")}
	fallback := &Fallback{runner: runner}

	_, err := fallback.ListInstances(context.Background(), "ocid1.compartment.oc1..test", "RUNNING")
	assert.ErrorContains(t, err, "no output")
}

func TestListInstances_MalformedJSONFails(t *testing.T) {
	runner := &fakeRunner{output: []byte("ServiceError: NotAuthenticated")}
	fallback := &Fallback{runner: runner}

	_, err := fallback.ListInstances(context.Background(), "ocid1.compartment.oc1..test", "RUNNING")
	assert.ErrorContains(t, err, "parsing CLI output")
}

func TestListDBSystems_Remaps(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{
	  "data": [
	    {
	      "id": "ocid1.dbsystem.oc1..a",
	      "display-name": "prod-db",
	      "shape": "VM.Standard2.4",
	      "lifecycle-state": "AVAILABLE",
	      "availability-domain": "AD-1",
	      "compartment-id": "ocid1.compartment.oc1..test",
	      "database-edition": "ENTERPRISE_EDITION",
	      "version": "19.22.0.0",
	      "node-count": 2,
	      "cpu-core-count": 8,
	      "data-storage-size-in-gbs": 512,
	      "hostname": "dbhost",
	      "domain": "sub.example.com"
	    }
	  ]
	}`)}
	fallback := &Fallback{runner: runner}

	systems, err := fallback.ListDBSystems(context.Background(), "ocid1.compartment.oc1..test", "available")
	require.NoError(t, err)
	require.Len(t, systems, 1)

	assert.Equal(t, []string{
		"db", "system", "list",
		"--compartment-id", "ocid1.compartment.oc1..test",
		"--output", "json",
		"--lifecycle-state", "AVAILABLE",
	}, runner.lastArgs)

	system := systems[0]
	assert.Equal(t, "prod-db", system.DisplayName)
	assert.Equal(t, "ENTERPRISE_EDITION", system.DatabaseEdition)
	assert.Equal(t, 8, system.CPUCoreCount)
	assert.Equal(t, 512, system.DataStorageSizeInGBs)
	assert.NotNil(t, system.Tags.Freeform)
}

func TestListAutonomousDatabases_Remaps(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{
	  "data": [
	    {
	      "id": "ocid1.autonomousdatabase.oc1..a",
	      "display-name": "adb-prod",
	      "db-name": "ADBPROD",
	      "lifecycle-state": "AVAILABLE",
	      "db-workload": "OLTP",
	      "db-version": "19c",
	      "cpu-core-count": 2,
	      "data-storage-size-in-tbs": 1,
	      "is-free-tier": false,
	      "is-auto-scaling-enabled": true,
	      "license-model": "LICENSE_INCLUDED",
	      "compartment-id": "ocid1.compartment.oc1..test"
	    }
	  ]
	}`)}
	fallback := &Fallback{runner: runner}

	databases, err := fallback.ListAutonomousDatabases(context.Background(), "ocid1.compartment.oc1..test", "")
	require.NoError(t, err)
	require.Len(t, databases, 1)

	adb := databases[0]
	assert.Equal(t, "adb-prod", adb.DisplayName)
	assert.Equal(t, "ADBPROD", adb.DBName)
	assert.Equal(t, "OLTP", adb.Workload)
	assert.Equal(t, 2, adb.CPUCoreCount)
	assert.Equal(t, 1, adb.DataStorageSizeInTBs)
	assert.True(t, adb.IsAutoScalingEnabled)
	assert.False(t, adb.IsFreeTier)
}
