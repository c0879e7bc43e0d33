package resourceoperation

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"text/template"

	"github.com/fatih/color"
	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/lib/azureresources"
	"github.com/santiago-labs/apphost/resource"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/santiago-labs/apphost/resourceoperation"

type resourceGroupOperation struct {
	Operation           int
	Mode                int
	Group               resource.ResourceGroup
	Client              azureresources.API
	OutputUI            runner.ConsoleUI
	DependentOperations []ResourceOperation
}

func (rg *resourceGroupOperation) AddDependent(op ResourceOperation) {
	rg.DependentOperations = append(rg.DependentOperations, op)
}

func (rg *resourceGroupOperation) ListDependents() []ResourceOperation {
	return rg.DependentOperations
}

// Call prints the plan for the group and, when deploying, writes the group
// before running any dependent operation.
func (rg *resourceGroupOperation) Call(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "resourcegroup."+operationName(rg.Mode))
	defer span.End()
	span.SetAttributes(
		attribute.String("apphost.resource_group", rg.Group.GroupName),
		attribute.String("apphost.operation", operationName(rg.Operation)),
	)

	rg.OutputUI.Print(rg.ToString(), rg.Group)

	if rg.Mode == Deploy {
		err := rg.Client.CreateOrUpdateResourceGroup(ctx, rg.Group.GroupName, rg.Group.Location, map[string]string{
			azureresources.ManagedByTag: "true",
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			rg.OutputUI.Print(color.RedString("Failed: %v", err), rg.Group)
			return err
		}
		rg.OutputUI.Print(fmt.Sprintf("Resource group %s ready.", rg.Group.GroupName), rg.Group)
	}

	for _, op := range rg.DependentOperations {
		if err := op.Call(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (rg *resourceGroupOperation) ToString() string {
	printColor := "yellow"
	templated := `(Update Resource Group)
	Name: {{ .Group.GroupName }}
	Location: {{ .Group.Location }}
`
	if rg.Operation == Create {
		printColor = "green"
		templated = `(Create Resource Group)
+	Name: {{ .Group.GroupName }}
+	Location: {{ .Group.Location }}
`
	}

	tpl, err := template.New("operation").Parse(templated)
	if err != nil {
		log.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, rg); err != nil {
		log.Fatal(err)
	}
	if printColor == "yellow" {
		return color.New(color.FgYellow).Sprint(buf.String())
	}
	return color.New(color.FgGreen).Sprint(buf.String())
}
