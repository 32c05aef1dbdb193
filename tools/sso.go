package tools

import (
	"context"

	"github.com/rayiskander2406/vendorportal/tool"
)

type ConfigureSSOInput struct {
	VendorId    string `json:"vendor_id" jsonschema:"description=Identifier of the vendor"`
	Protocol    string `json:"protocol" jsonschema:"description=SSO protocol: saml or oidc"`
	MetadataURL string `json:"metadata_url" jsonschema:"description=HTTPS URL of the identity provider metadata"`
}

type ConfigureSSOOutput struct {
	Config *SSOConfig `json:"config"`
}

// FormName asks the client to render the SSO verification form once
// the config is staged.
func (ConfigureSSOOutput) FormName() string {
	return "sso_config"
}

func NewConfigureSSO(dir *Directory) tool.Invoker {
	return tool.NewInvoker(tool.Info{
		Name: "configure_sso",
		Description: "Stage single sign-on for a vendor from its identity provider " +
			"metadata. The config stays pending until the vendor verifies it.",
	}, func(ctx context.Context, input ConfigureSSOInput) (ConfigureSSOOutput, error) {
		cfg, err := dir.ConfigureSSO(input.VendorId, input.Protocol, input.MetadataURL)
		if err != nil {
			return ConfigureSSOOutput{}, err
		}
		return ConfigureSSOOutput{Config: cfg}, nil
	})
}
