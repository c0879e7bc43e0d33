package publisher

import (
	"context"
	"fmt"

	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/lib/azureresources"
	"github.com/santiago-labs/apphost/lib/colors"
	"github.com/santiago-labs/apphost/lib/ctxlog"
	"github.com/santiago-labs/apphost/resource"
	"github.com/santiago-labs/apphost/resourceoperation"
)

// Azure plans (Diff) or provisions (Deploy) the declarations in one resource
// group.
type Azure struct {
	Mode      int
	Client    azureresources.API
	ConsoleUI runner.ConsoleUI
	Group     resource.ResourceGroup
	TenantID  string
	Scope     string

	AdminLogin    string
	AdminObjectID string
}

func (a *Azure) Name() string {
	if a.Mode == resourceoperation.Deploy {
		return "deploy"
	}
	return "diff"
}

func (a *Azure) Publish(ctx context.Context, decls []resource.Declaration) error {
	ops, err := resourceoperation.CollectAzureResourceOps(ctx, a.ConsoleUI, a.Client, decls, resourceoperation.CollectArgs{
		Group:    a.Group,
		TenantID: a.TenantID,
		Scope:    a.Scope,
		Mode:     a.Mode,

		AdminLogin:    a.AdminLogin,
		AdminObjectID: a.AdminObjectID,
	})
	if err != nil {
		a.ConsoleUI.Print(colors.Status("failed")+fmt.Sprintf(": %v", err), a.Group)
		return err
	}

	creates, updates := resourceoperation.Summary(ops)
	ctxlog.FromContext(ctx).Info("collected operations", "creates", creates, "updates", updates)

	for _, op := range ops {
		if err := op.Call(ctx); err != nil {
			return err
		}
	}

	verb := "Plan"
	if a.Mode == resourceoperation.Deploy {
		verb = "Deployed"
	}
	a.ConsoleUI.Print(fmt.Sprintf("%s: %d to %s, %d to %s.", verb,
		creates, colors.Status("create"), updates, colors.Status("update")), a.Group)
	return nil
}
