package resource

import (
	"fmt"
	"strings"
)

// ResourceGroup is the Azure resource group every declaration deploys into.
type ResourceGroup struct {
	SubscriptionID string
	GroupName      string
	Location       string
}

func (g ResourceGroup) ID() string {
	return strings.ToLower(fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", g.SubscriptionID, g.GroupName))
}

func (g ResourceGroup) Name() string {
	return g.GroupName
}

func (g ResourceGroup) Type() string {
	return "Resource Group"
}
