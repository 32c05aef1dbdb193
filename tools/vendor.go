package tools

import (
	"context"

	"github.com/rayiskander2406/vendorportal/tool"
)

type CreateVendorInput struct {
	Name         string `json:"name" jsonschema:"description=Display name of the vendor organization"`
	ContactEmail string `json:"contact_email" jsonschema:"description=Primary contact email for the vendor"`
	Tier         string `json:"tier,omitempty" jsonschema:"description=Service tier: standard, premium or enterprise. Defaults to standard"`
}

type CreateVendorOutput struct {
	Vendor *Vendor `json:"vendor"`
}

func NewCreateVendor(dir *Directory) tool.Invoker {
	return tool.NewInvoker(tool.Info{
		Name: "create_vendor",
		Description: "Register a new vendor organization on the platform. " +
			"Fails if a vendor with the same name already exists.",
	}, func(ctx context.Context, input CreateVendorInput) (CreateVendorOutput, error) {
		v, err := dir.CreateVendor(input.Name, input.ContactEmail, input.Tier)
		if err != nil {
			return CreateVendorOutput{}, err
		}
		return CreateVendorOutput{Vendor: v}, nil
	})
}
