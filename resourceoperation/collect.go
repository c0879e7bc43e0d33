package resourceoperation

import (
	"context"
	"strings"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/lib/azureresources"
	"github.com/santiago-labs/apphost/resource"
)

type CollectArgs struct {
	Group resource.ResourceGroup
	// TenantID defaults to the subscription's tenant.
	TenantID string
	// AdminLogin and AdminObjectID name the Entra ID administrator of kinds
	// that need one.
	AdminLogin    string
	AdminObjectID string
	// Scope seeds physical names. It must stay the same across runs against
	// the same subscription and group.
	Scope string
	Mode  int
}

// CollectAzureResourceOps returns one resource group operation with a
// dependent operation per declaration, in declaration order. A declaration is
// an Update when a live resource of its ARM type carries its name tag.
func CollectAzureResourceOps(
	ctx context.Context,
	outputUI runner.ConsoleUI,
	client azureresources.API,
	decls []resource.Declaration,
	args CollectArgs,
) ([]ResourceOperation, error) {
	if args.Mode != Diff && args.Mode != Deploy {
		return nil, oops.Errorf("unsupported mode %d", args.Mode)
	}

	sub, err := client.Subscription(ctx)
	if err != nil {
		return nil, err
	}
	tenantID := args.TenantID
	if tenantID == "" {
		tenantID = sub.TenantID
	}

	exists, err := client.ResourceGroupExists(ctx, args.Group.GroupName)
	if err != nil {
		return nil, err
	}

	live := map[string]azureresources.LiveResource{}
	if exists {
		resources, err := client.ListResources(ctx, args.Group.GroupName)
		if err != nil {
			return nil, err
		}
		for _, r := range resources {
			name, ok := r.Tags[azureresources.NameTag]
			if !ok {
				continue
			}
			live[liveKey(r.Type, name)] = r
		}
	}

	groupOp := &resourceGroupOperation{
		Operation: Update,
		Mode:      args.Mode,
		Group:     args.Group,
		Client:    client,
		OutputUI:  outputUI,
	}
	if !exists {
		groupOp.Operation = Create
	}

	claimed := map[string]string{}
	for _, d := range decls {
		spec, ok := d.Kind.Spec()
		if !ok {
			return nil, resource.UnknownKindError{Kind: string(d.Kind)}
		}
		if spec.RequiresAdmin && args.Mode == Deploy && args.AdminObjectID == "" {
			return nil, oops.Errorf("%s (%s) needs an Entra ID administrator: set APPHOST_SQL_ADMIN_OBJECT_ID and APPHOST_SQL_ADMIN_LOGIN", d.ResourceName, d.Kind)
		}

		physicalName := d.Kind.PhysicalName(d.ResourceName, args.Scope)
		op := &azureResourceOperation{
			Operation:     Create,
			Mode:          args.Mode,
			Declaration:   d,
			Spec:          spec,
			PhysicalName:  physicalName,
			ResourceID:    azureresources.ResourceID(args.Group.SubscriptionID, args.Group.GroupName, spec.ARMType, physicalName),
			Group:         args.Group,
			TenantID:      tenantID,
			AdminLogin:    args.AdminLogin,
			AdminObjectID: args.AdminObjectID,
			Client:        client,
			OutputUI:      outputUI,
		}
		if existing, ok := live[liveKey(spec.ARMType, d.ResourceName)]; ok {
			op.Operation = Update
			if existing.ID != "" {
				op.ResourceID = existing.ID
				op.PhysicalName = existing.Name
			}
		}

		idKey := strings.ToLower(op.ResourceID)
		if other, ok := claimed[idKey]; ok {
			return nil, oops.Errorf("%s and %s resolve to the same Azure resource %s", other, d.ResourceName, op.ResourceID)
		}
		claimed[idKey] = d.ResourceName

		groupOp.AddDependent(op)
	}

	return []ResourceOperation{groupOp}, nil
}

// ARM types and our names are both case-insensitive.
func liveKey(armType, name string) string {
	return strings.ToLower(armType) + "|" + strings.ToLower(name)
}

// Summary counts the creates and updates in ops.
func Summary(ops []ResourceOperation) (creates int, updates int) {
	for _, op := range FlattenOperations(ops) {
		switch o := op.(type) {
		case *azureResourceOperation:
			if o.Operation == Create {
				creates++
			} else {
				updates++
			}
		}
	}
	return creates, updates
}
