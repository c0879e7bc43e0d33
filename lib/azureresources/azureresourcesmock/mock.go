// Package azureresourcesmock is an in-memory azureresources.API.
package azureresourcesmock

import (
	"context"
	"strings"
	"sync"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/lib/azureresources"
)

type Client struct {
	SubscriptionInfo azureresources.Subscription

	// FailOn makes CreateOrUpdateResource fail for IDs containing the string.
	FailOn string

	mu        sync.Mutex
	groups    map[string]map[string]string
	resources map[string][]azureresources.LiveResource
	calls     []string
}

func New(subscriptionID string) *Client {
	return &Client{
		SubscriptionInfo: azureresources.Subscription{
			ID:          subscriptionID,
			DisplayName: "mock",
			State:       "Enabled",
			TenantID:    "mock-tenant",
		},
		groups:    map[string]map[string]string{},
		resources: map[string][]azureresources.LiveResource{},
	}
}

// Seed adds a live resource to group without recording a call.
func (c *Client) Seed(group string, r azureresources.LiveResource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[strings.ToLower(group)] = append(c.resources[strings.ToLower(group)], r)
}

// Calls returns the mutating calls made so far, in order.
func (c *Client) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *Client) Subscription(ctx context.Context) (azureresources.Subscription, error) {
	if c.SubscriptionInfo.ID == "" {
		return azureresources.Subscription{}, oops.Errorf("subscription not found")
	}
	return c.SubscriptionInfo, nil
}

func (c *Client) ResourceGroupExists(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.groups[strings.ToLower(name)]
	return ok, nil
}

func (c *Client) CreateOrUpdateResourceGroup(ctx context.Context, name, location string, tags map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[strings.ToLower(name)] = tags
	c.calls = append(c.calls, "group:"+name)
	return nil
}

func (c *Client) ListResources(ctx context.Context, group string) ([]azureresources.LiveResource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]azureresources.LiveResource(nil), c.resources[strings.ToLower(group)]...), nil
}

func (c *Client) CreateOrUpdateResource(ctx context.Context, spec azureresources.ResourceSpec) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, "resource:"+spec.ID)
	if c.FailOn != "" && strings.Contains(spec.ID, c.FailOn) {
		return "", oops.Errorf("mock failure for %s", spec.ID)
	}

	group := groupFromID(spec.ID)
	if _, ok := c.groups[group]; !ok {
		return "", oops.Errorf("resource group %s not found", group)
	}

	live := azureresources.LiveResource{
		ID:   spec.ID,
		Name: spec.ID[strings.LastIndex(spec.ID, "/")+1:],
		Type: typeFromID(spec.ID),
		Tags: spec.Tags,
	}
	existing := c.resources[group]
	for i := range existing {
		if strings.EqualFold(existing[i].ID, spec.ID) {
			existing[i] = live
			return spec.ID, nil
		}
	}
	c.resources[group] = append(existing, live)
	return spec.ID, nil
}

// IDs look like /subscriptions/{s}/resourceGroups/{g}/providers/{ns}/{type}/{name}.
func groupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i+1 < len(parts); i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return strings.ToLower(parts[i+1])
		}
	}
	return ""
}

func typeFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i+1 < len(parts); i++ {
		if strings.EqualFold(parts[i], "providers") && i+3 < len(parts) {
			return parts[i+1] + "/" + parts[i+2]
		}
	}
	return ""
}

var _ azureresources.API = (*Client)(nil)
