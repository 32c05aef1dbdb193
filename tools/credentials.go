package tools

import (
	"context"

	"github.com/rayiskander2406/vendorportal/tool"
)

type IssueCredentialsInput struct {
	VendorId    string `json:"vendor_id" jsonschema:"description=Identifier of the vendor, e.g. vnd_..."`
	Environment string `json:"environment,omitempty" jsonschema:"description=Target environment: sandbox or staging. Defaults to sandbox"`
}

type IssueCredentialsOutput struct {
	Credentials *Credentials `json:"credentials"`
}

func NewIssueCredentials(dir *Directory) tool.Invoker {
	return tool.NewInvoker(tool.Info{
		Name: "issue_sandbox_credentials",
		Description: "Issue API client credentials for a vendor in a non-production " +
			"environment. Re-issuing rotates the secret and invalidates the previous pair.",
	}, func(ctx context.Context, input IssueCredentialsInput) (IssueCredentialsOutput, error) {
		c, err := dir.IssueCredentials(input.VendorId, input.Environment)
		if err != nil {
			return IssueCredentialsOutput{}, err
		}
		return IssueCredentialsOutput{Credentials: c}, nil
	})
}
