package tools

import (
	"context"

	"github.com/rayiskander2406/vendorportal/tool"
)

type QueryRosterInput struct {
	VendorId string `json:"vendor_id" jsonschema:"description=Identifier of the vendor"`
	Role     string `json:"role,omitempty" jsonschema:"description=Optional role filter: admin, developer or billing"`
}

type QueryRosterOutput struct {
	Entries []RosterEntry `json:"entries"`
	Count   int           `json:"count"`
}

func NewQueryRoster(dir *Directory) tool.Invoker {
	return tool.NewInvoker(tool.Info{
		Name:        "query_roster",
		Description: "List the user accounts registered under a vendor, optionally filtered by role.",
	}, func(ctx context.Context, input QueryRosterInput) (QueryRosterOutput, error) {
		entries, err := dir.QueryRoster(input.VendorId, input.Role)
		if err != nil {
			return QueryRosterOutput{}, err
		}
		return QueryRosterOutput{Entries: entries, Count: len(entries)}, nil
	})
}
