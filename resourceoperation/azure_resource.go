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

type azureResourceOperation struct {
	Operation           int
	Mode                int
	Declaration         resource.Declaration
	Spec                resource.KindSpec
	PhysicalName        string
	ResourceID          string
	Group               resource.ResourceGroup
	TenantID            string
	AdminLogin          string
	AdminObjectID       string
	Client              azureresources.API
	OutputUI            runner.ConsoleUI
	DependentOperations []ResourceOperation
}

func (ao *azureResourceOperation) AddDependent(op ResourceOperation) {
	ao.DependentOperations = append(ao.DependentOperations, op)
}

func (ao *azureResourceOperation) ListDependents() []ResourceOperation {
	return ao.DependentOperations
}

func (ao *azureResourceOperation) Call(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "azureresource."+operationName(ao.Mode))
	defer span.End()
	span.SetAttributes(
		attribute.String("apphost.resource", ao.Declaration.ResourceName),
		attribute.String("apphost.kind", string(ao.Declaration.Kind)),
		attribute.String("apphost.operation", operationName(ao.Operation)),
	)

	ao.OutputUI.Print(ao.ToString(), ao.Declaration)
	if ao.Mode != Deploy {
		return nil
	}

	id, err := ao.Client.CreateOrUpdateResource(ctx, ao.ResourceSpec())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		ao.OutputUI.Print(color.RedString("Failed: %v", err), ao.Declaration)
		return err
	}
	ao.OutputUI.Print(fmt.Sprintf("Provisioned %s", id), ao.Declaration)

	for _, op := range ao.DependentOperations {
		if err := op.Call(ctx); err != nil {
			return err
		}
	}

	return nil
}

// ResourceSpec is the desired ARM state for the declaration.
func (ao *azureResourceOperation) ResourceSpec() azureresources.ResourceSpec {
	spec := azureresources.ResourceSpec{
		ID:         ao.ResourceID,
		APIVersion: ao.Spec.APIVersion,
		Location:   ao.Group.Location,
		Kind:       ao.Spec.ARMKind,
		SKU:        ao.Spec.SKU,
		Tags: map[string]string{
			azureresources.ManagedByTag: "true",
			azureresources.NameTag:      ao.Declaration.ResourceName,
		},
	}
	if ao.Spec.Properties != nil {
		spec.Properties = ao.Spec.Properties(resource.PropertiesContext{
			PhysicalName: ao.PhysicalName,
			Location:     ao.Group.Location,
			TenantID:     ao.TenantID,

			AdminLogin:    ao.AdminLogin,
			AdminObjectID: ao.AdminObjectID,
		})
	}
	return spec
}

func (ao *azureResourceOperation) ToString() string {
	printColor := "yellow"
	templated := `(Update {{ .Spec.DisplayName }})
~	Name: {{ .Declaration.ResourceName }}
~	Physical Name: {{ .PhysicalName }}
~	Type: {{ .Spec.ARMType }}@{{ .Spec.APIVersion }}
{{- if .Spec.SKU }}
~	SKU: {{ .Spec.SKU.Name }}
{{- end }}
`
	if ao.Operation == Create {
		printColor = "green"
		templated = `(Create {{ .Spec.DisplayName }})
+	Name: {{ .Declaration.ResourceName }}
+	Physical Name: {{ .PhysicalName }}
+	Type: {{ .Spec.ARMType }}@{{ .Spec.APIVersion }}
{{- if .Spec.SKU }}
+	SKU: {{ .Spec.SKU.Name }}
{{- end }}
`
	}

	tpl, err := template.New("operation").Parse(templated)
	if err != nil {
		log.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, ao); err != nil {
		log.Fatal(err)
	}
	if printColor == "yellow" {
		return color.New(color.FgYellow).Sprint(buf.String())
	}
	return color.New(color.FgGreen).Sprint(buf.String())
}
