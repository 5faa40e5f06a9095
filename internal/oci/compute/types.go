package compute

import (
	"ocictl/internal/oci"

	"github.com/oracle/oci-go-sdk/v65/core"
)

// Instance is the normalized, flat compute instance shape returned by every
// tool regardless of whether the SDK or the CLI produced it.
type Instance struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Shape              string            `json:"shape"`
	State              string            `json:"state"`
	AvailabilityDomain string            `json:"availability_domain"`
	CompartmentID      string            `json:"compartment_id"`
	CreatedTime        string            `json:"created_time,omitempty"`
	Region             string            `json:"region"`
	ImageID            string            `json:"image_id,omitempty"`
	FaultDomain        string            `json:"fault_domain,omitempty"`
	Metadata           map[string]string `json:"metadata"`
	Tags               oci.Tags          `json:"tags"`

	// Network enrichment, populated only by the list-with-network path.
	NetworkInterfaces []NetworkInterface `json:"network_interfaces,omitempty"`
	PrimaryPrivateIP  string             `json:"primary_private_ip,omitempty"`
	PrimaryPublicIP   string             `json:"primary_public_ip,omitempty"`
	Hostname          string             `json:"hostname,omitempty"`
}

// InstanceDetails extends Instance with the configuration blocks only the
// SDK path can provide.
type InstanceDetails struct {
	Instance
	ExtendedMetadata map[string]interface{} `json:"extended_metadata"`
	Configuration    InstanceConfiguration  `json:"configuration"`
}

// InstanceConfiguration groups the vendor configuration sub-objects.
type InstanceConfiguration struct {
	LaunchOptions      *core.LaunchOptions                `json:"launch_options,omitempty"`
	InstanceOptions    *core.InstanceOptions              `json:"instance_options,omitempty"`
	AvailabilityConfig *core.InstanceAvailabilityConfig   `json:"availability_config,omitempty"`
	AgentConfig        *core.InstanceAgentConfig          `json:"agent_config,omitempty"`
}

// NetworkInterface is the normalized VNIC shape.
type NetworkInterface struct {
	AttachmentID        string   `json:"attachment_id"`
	VnicID              string   `json:"vnic_id"`
	IsPrimary           bool     `json:"is_primary"`
	PrivateIP           string   `json:"private_ip,omitempty"`
	PublicIP            string   `json:"public_ip,omitempty"`
	Hostname            string   `json:"hostname,omitempty"`
	MacAddress          string   `json:"mac_address,omitempty"`
	SubnetID            string   `json:"subnet_id,omitempty"`
	NicIndex            int      `json:"nic_index"`
	State               string   `json:"state"`
	SkipSourceDestCheck bool     `json:"skip_source_dest_check"`
	SecurityGroups      []string `json:"security_groups"`
}

// ActionResult reports an accepted lifecycle action. The work request is
// never polled; callers receive the handle and nothing more.
type ActionResult struct {
	InstanceID    string `json:"instance_id"`
	InstanceName  string `json:"instance_name"`
	Action        string `json:"action"`
	PreviousState string `json:"previous_state"`
	WorkRequestID string `json:"work_request_id,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

// StateInfo is the minimal lifecycle-state report for one instance.
type StateInfo struct {
	InstanceID         string `json:"instance_id"`
	InstanceName       string `json:"instance_name"`
	LifecycleState     string `json:"lifecycle_state"`
	Shape              string `json:"shape"`
	AvailabilityDomain string `json:"availability_domain"`
	CompartmentID      string `json:"compartment_id"`
	TimeCreated        string `json:"time_created,omitempty"`
}

func normalizeInstance(in core.Instance, region string) Instance {
	if region == "" {
		region = oci.StringValue(in.Region)
	}
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return Instance{
		ID:                 oci.StringValue(in.Id),
		Name:               oci.StringValue(in.DisplayName),
		Shape:              oci.StringValue(in.Shape),
		State:              string(in.LifecycleState),
		AvailabilityDomain: oci.StringValue(in.AvailabilityDomain),
		CompartmentID:      oci.StringValue(in.CompartmentId),
		CreatedTime:        oci.FormatSDKTime(in.TimeCreated),
		Region:             region,
		ImageID:            oci.StringValue(in.ImageId),
		FaultDomain:        oci.StringValue(in.FaultDomain),
		Metadata:           metadata,
		Tags:               oci.NormalizeTags(in.FreeformTags, in.DefinedTags),
	}
}

func normalizeVnic(attachment core.VnicAttachment, vnic core.Vnic) NetworkInterface {
	groups := vnic.NsgIds
	if groups == nil {
		groups = []string{}
	}
	return NetworkInterface{
		AttachmentID:        oci.StringValue(attachment.Id),
		VnicID:              oci.StringValue(attachment.VnicId),
		IsPrimary:           oci.BoolValue(vnic.IsPrimary),
		PrivateIP:           oci.StringValue(vnic.PrivateIp),
		PublicIP:            oci.StringValue(vnic.PublicIp),
		Hostname:            oci.StringValue(vnic.HostnameLabel),
		MacAddress:          oci.StringValue(vnic.MacAddress),
		SubnetID:            oci.StringValue(vnic.SubnetId),
		NicIndex:            oci.IntValue(attachment.NicIndex),
		State:               string(vnic.LifecycleState),
		SkipSourceDestCheck: oci.BoolValue(vnic.SkipSourceDestCheck),
		SecurityGroups:      groups,
	}
}
