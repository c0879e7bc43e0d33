// Package azureresources wraps the Azure Resource Manager calls needed to
// provision declarations into one resource group.
package azureresources

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/aws/smithy-go/ptr"
	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/resource"
)

// ManagedByTag marks every resource group and resource this tool writes.
// NameTag carries the declaration name of a resource.
const (
	ManagedByTag = "apphost-managed"
	NameTag      = "apphost-resource"
)

type Subscription struct {
	ID          string
	DisplayName string
	State       string
	TenantID    string
}

// LiveResource is a resource that already exists in the target group.
type LiveResource struct {
	ID   string
	Name string
	Type string
	Tags map[string]string
}

// ResourceSpec is the desired state PUT for one declaration.
type ResourceSpec struct {
	ID         string
	APIVersion string
	Location   string
	Kind       string
	SKU        *resource.SKU
	Tags       map[string]string
	Properties map[string]interface{}
}

type API interface {
	Subscription(ctx context.Context) (Subscription, error)
	ResourceGroupExists(ctx context.Context, name string) (bool, error)
	CreateOrUpdateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error
	ListResources(ctx context.Context, group string) ([]LiveResource, error)
	CreateOrUpdateResource(ctx context.Context, spec ResourceSpec) (string, error)
}

type Client struct {
	subscriptionID string

	subscriptionClient *armsubscriptions.Client
	groupsClient       *armresources.ResourceGroupsClient
	resourcesClient    *armresources.Client

	pollFrequency time.Duration
}

func New(subscriptionID string) (*Client, error) {
	creds, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, oops.Wrapf(err, "azure credentials")
	}
	return NewWithCredential(subscriptionID, creds)
}

func NewWithCredential(subscriptionID string, creds azcore.TokenCredential) (*Client, error) {
	client := &Client{
		subscriptionID: subscriptionID,
		pollFrequency:  5 * time.Second,
	}

	subscriptionClient, err := armsubscriptions.NewClient(creds, nil)
	if err != nil {
		return nil, oops.Wrapf(err, "subscriptions client")
	}
	client.subscriptionClient = subscriptionClient

	groupsClient, err := armresources.NewResourceGroupsClient(subscriptionID, creds, nil)
	if err != nil {
		return nil, oops.Wrapf(err, "resource groups client")
	}
	client.groupsClient = groupsClient

	resourcesClient, err := armresources.NewClient(subscriptionID, creds, nil)
	if err != nil {
		return nil, oops.Wrapf(err, "resources client")
	}
	client.resourcesClient = resourcesClient

	return client, nil
}

func (c *Client) Subscription(ctx context.Context) (Subscription, error) {
	resp, err := c.subscriptionClient.Get(ctx, c.subscriptionID, nil)
	if err != nil {
		return Subscription{}, oops.Wrapf(err, "get subscription %s", c.subscriptionID)
	}

	sub := Subscription{
		ID:          ptr.ToString(resp.SubscriptionID),
		DisplayName: ptr.ToString(resp.DisplayName),
		TenantID:    ptr.ToString(resp.TenantID),
	}
	if resp.State != nil {
		sub.State = string(*resp.State)
	}
	return sub, nil
}

func (c *Client) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	resp, err := c.groupsClient.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, oops.Wrapf(err, "check resource group %s", name)
	}
	return resp.Success, nil
}

func (c *Client) CreateOrUpdateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	_, err := c.groupsClient.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: ptr.String(location),
		Tags:     toPtrTags(tags),
	}, nil)
	if err != nil {
		return oops.Wrapf(err, "create or update resource group %s", name)
	}
	return nil
}

// ListResources fetches every resource in group.
func (c *Client) ListResources(ctx context.Context, group string) ([]LiveResource, error) {
	var response []LiveResource

	pager := c.resourcesClient.NewListByResourceGroupPager(group, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, oops.Wrapf(err, "list resources in %s", group)
		}
		for _, r := range page.Value {
			response = append(response, LiveResource{
				ID:   ptr.ToString(r.ID),
				Name: ptr.ToString(r.Name),
				Type: ptr.ToString(r.Type),
				Tags: fromPtrTags(r.Tags),
			})
		}
	}

	return response, nil
}

// CreateOrUpdateResource PUTs spec and waits for the long running operation
// to finish. It returns the provisioned resource ID.
func (c *Client) CreateOrUpdateResource(ctx context.Context, spec ResourceSpec) (string, error) {
	params := armresources.GenericResource{
		Location: ptr.String(spec.Location),
		Tags:     toPtrTags(spec.Tags),
	}
	if spec.Kind != "" {
		params.Kind = ptr.String(spec.Kind)
	}
	if spec.SKU != nil {
		params.SKU = &armresources.SKU{}
		if spec.SKU.Name != "" {
			params.SKU.Name = ptr.String(spec.SKU.Name)
		}
		if spec.SKU.Tier != "" {
			params.SKU.Tier = ptr.String(spec.SKU.Tier)
		}
	}
	if spec.Properties != nil {
		params.Properties = spec.Properties
	}

	poller, err := c.resourcesClient.BeginCreateOrUpdateByID(ctx, spec.ID, spec.APIVersion, params, nil)
	if err != nil {
		return "", oops.Wrapf(err, "begin create or update %s", spec.ID)
	}

	result, err := poller.PollUntilDone(ctx, &runtime.PollUntilDoneOptions{
		Frequency: c.pollFrequency,
	})
	if err != nil {
		return "", oops.Wrapf(err, "poll create or update %s", spec.ID)
	}

	if id := ptr.ToString(result.ID); id != "" {
		return id, nil
	}
	return spec.ID, nil
}

// ResourceID builds the ARM ID of a resource of armType named name.
func ResourceID(subscriptionID, group, armType, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/%s/%s", subscriptionID, group, armType, name)
}

func toPtrTags(tags map[string]string) map[string]*string {
	if tags == nil {
		return nil
	}
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = ptr.String(v)
	}
	return out
}

func fromPtrTags(tags map[string]*string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = ptr.ToString(v)
	}
	return out
}
