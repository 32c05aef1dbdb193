package tools

import (
	"context"

	"github.com/rayiskander2406/vendorportal/tool"
)

type SendTestMessageInput struct {
	VendorId string `json:"vendor_id" jsonschema:"description=Identifier of the vendor"`
	Channel  string `json:"channel" jsonschema:"description=Delivery channel: email or webhook"`
	Body     string `json:"body" jsonschema:"description=Message body to deliver"`
}

type SendTestMessageOutput struct {
	Delivery *Delivery `json:"delivery"`
}

func NewSendTestMessage(dir *Directory) tool.Invoker {
	return tool.NewInvoker(tool.Info{
		Name: "send_test_message",
		Description: "Send a test message to a vendor's integration endpoint. Webhook " +
			"delivery requires the vendor to hold issued credentials.",
	}, func(ctx context.Context, input SendTestMessageInput) (SendTestMessageOutput, error) {
		rec, err := dir.SendTestMessage(input.VendorId, input.Channel, input.Body)
		if err != nil {
			return SendTestMessageOutput{}, err
		}
		return SendTestMessageOutput{Delivery: rec}, nil
	})
}

// RegisterAll wires every onboarding tool against one shared directory.
func RegisterAll(registry *tool.Registry, dir *Directory) {
	registry.Register(NewCreateVendor(dir))
	registry.Register(NewIssueCredentials(dir))
	registry.Register(NewConfigureSSO(dir))
	registry.Register(NewQueryRoster(dir))
	registry.Register(NewSendTestMessage(dir))
}
