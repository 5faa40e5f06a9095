package compute

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ocictl/internal/oci"
	"ocictl/pkg/logging"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

const logSubsystem = "Compute"

// Lifecycle actions the compute service will submit. Anything else is
// rejected before a request leaves the process.
var validActions = map[string]struct{}{
	"START":     {},
	"STOP":      {},
	"SOFTSTOP":  {},
	"RESET":     {},
	"SOFTRESET": {},
}

// ValidActions lists the accepted instance lifecycle actions in a stable
// order, for error messages and tool descriptions.
func ValidActions() []string {
	return []string{"START", "STOP", "SOFTSTOP", "RESET", "SOFTRESET"}
}

// Service exposes normalized compute operations over the SDK clients.
type Service struct {
	clients *oci.Clients

	// Test seams. When set they bypass the client bundle.
	computeAPI oci.ComputeAPI
	networkAPI oci.NetworkAPI
	regionName string
}

// NewService creates a compute service backed by the shared client bundle.
func NewService(clients *oci.Clients) *Service {
	return &Service{clients: clients}
}

func (s *Service) compute() (oci.ComputeAPI, error) {
	if s.computeAPI != nil {
		return s.computeAPI, nil
	}
	if s.clients != nil {
		return s.clients.Compute()
	}
	return nil, errors.New("compute client not configured")
}

func (s *Service) network() (oci.NetworkAPI, error) {
	if s.networkAPI != nil {
		return s.networkAPI, nil
	}
	if s.clients != nil {
		return s.clients.Network()
	}
	return nil, errors.New("virtual network client not configured")
}

func (s *Service) region() string {
	if s.regionName != "" {
		return s.regionName
	}
	if s.clients != nil {
		return s.clients.Region()
	}
	return "unknown"
}

// List returns instances in the compartment, optionally filtered by
// lifecycle state.
func (s *Service) List(ctx context.Context, compartmentID, lifecycleState string) ([]Instance, error) {
	client, err := s.compute()
	if err != nil {
		return nil, err
	}

	request := core.ListInstancesRequest{
		CompartmentId: common.String(compartmentID),
	}
	if lifecycleState != "" {
		request.LifecycleState = core.InstanceLifecycleStateEnum(strings.ToUpper(lifecycleState))
	}

	logging.Debug(logSubsystem, "Listing instances (compartment: %s, state: %s)", compartmentID, lifecycleState)
	response, err := client.ListInstances(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	region := s.region()
	instances := make([]Instance, 0, len(response.Items))
	for _, item := range response.Items {
		instances = append(instances, normalizeInstance(item, region))
	}
	logging.Info(logSubsystem, "Found %d instances via SDK", len(instances))
	return instances, nil
}

// Get returns the full detail shape for one instance.
func (s *Service) Get(ctx context.Context, instanceID string) (InstanceDetails, error) {
	client, err := s.compute()
	if err != nil {
		return InstanceDetails{}, err
	}

	response, err := client.GetInstance(ctx, core.GetInstanceRequest{
		InstanceId: common.String(instanceID),
	})
	if err != nil {
		return InstanceDetails{}, fmt.Errorf("getting instance %s: %w", instanceID, err)
	}

	instance := response.Instance
	extended := instance.ExtendedMetadata
	if extended == nil {
		extended = map[string]interface{}{}
	}
	return InstanceDetails{
		Instance:         normalizeInstance(instance, s.region()),
		ExtendedMetadata: extended,
		Configuration: InstanceConfiguration{
			LaunchOptions:      instance.LaunchOptions,
			InstanceOptions:    instance.InstanceOptions,
			AvailabilityConfig: instance.AvailabilityConfig,
			AgentConfig:        instance.AgentConfig,
		},
	}, nil
}

// NetworkInterfaces returns the VNICs attached to an instance. VNICs whose
// detail lookup fails are skipped with a warning, matching the listing
// semantics of the vendor console.
func (s *Service) NetworkInterfaces(ctx context.Context, instanceID, compartmentID string) ([]NetworkInterface, error) {
	computeClient, err := s.compute()
	if err != nil {
		return nil, err
	}
	networkClient, err := s.network()
	if err != nil {
		return nil, err
	}

	response, err := computeClient.ListVnicAttachments(ctx, core.ListVnicAttachmentsRequest{
		CompartmentId: common.String(compartmentID),
		InstanceId:    common.String(instanceID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing VNIC attachments for %s: %w", instanceID, err)
	}

	interfaces := make([]NetworkInterface, 0, len(response.Items))
	for _, attachment := range response.Items {
		vnicResponse, err := networkClient.GetVnic(ctx, core.GetVnicRequest{
			VnicId: attachment.VnicId,
		})
		if err != nil {
			logging.Warn(logSubsystem, "Failed to get VNIC %s: %v", oci.StringValue(attachment.VnicId), err)
			continue
		}
		interfaces = append(interfaces, normalizeVnic(attachment, vnicResponse.Vnic))
	}
	return interfaces, nil
}

// State returns the current lifecycle state of an instance, unmodified from
// what the vendor reports.
func (s *Service) State(ctx context.Context, instanceID string) (StateInfo, error) {
	client, err := s.compute()
	if err != nil {
		return StateInfo{}, err
	}

	response, err := client.GetInstance(ctx, core.GetInstanceRequest{
		InstanceId: common.String(instanceID),
	})
	if err != nil {
		return StateInfo{}, fmt.Errorf("getting instance state %s: %w", instanceID, err)
	}

	instance := response.Instance
	return StateInfo{
		InstanceID:         instanceID,
		InstanceName:       oci.StringValue(instance.DisplayName),
		LifecycleState:     string(instance.LifecycleState),
		Shape:              oci.StringValue(instance.Shape),
		AvailabilityDomain: oci.StringValue(instance.AvailabilityDomain),
		CompartmentID:      oci.StringValue(instance.CompartmentId),
		TimeCreated:        oci.FormatSDKTime(instance.TimeCreated),
	}, nil
}

// Action submits a lifecycle action and returns as soon as the vendor
// accepts it. The action name is validated before any network call.
func (s *Service) Action(ctx context.Context, instanceID, action string) (ActionResult, error) {
	action = strings.ToUpper(action)
	if _, ok := validActions[action]; !ok {
		return ActionResult{}, fmt.Errorf("invalid action %q, valid actions: %s", action, strings.Join(ValidActions(), ", "))
	}

	client, err := s.compute()
	if err != nil {
		return ActionResult{}, err
	}

	// Fetch current state first so the result can report the transition.
	current, err := client.GetInstance(ctx, core.GetInstanceRequest{
		InstanceId: common.String(instanceID),
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("getting instance %s before action: %w", instanceID, err)
	}

	logging.Info(logSubsystem, "Submitting %s for instance '%s' (current state: %s)",
		action, oci.StringValue(current.Instance.DisplayName), current.Instance.LifecycleState)

	response, err := client.InstanceAction(ctx, core.InstanceActionRequest{
		InstanceId: common.String(instanceID),
		Action:     core.InstanceActionActionEnum(action),
	})
	if err != nil {
		return ActionResult{}, fmt.Errorf("submitting %s for %s: %w", action, instanceID, err)
	}

	return ActionResult{
		InstanceID:    instanceID,
		InstanceName:  oci.StringValue(current.Instance.DisplayName),
		Action:        action,
		PreviousState: string(current.Instance.LifecycleState),
		WorkRequestID: oci.WorkRequestID(response.RawResponse),
		RequestID:     oci.StringValue(response.OpcRequestId),
	}, nil
}
