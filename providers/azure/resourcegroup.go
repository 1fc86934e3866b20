package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/azsmoke-io/azsmoke/internal/provider"
)

type resourceGroupConfig struct {
	Tags map[string]string `json:"tags"`
}

func (p *Provider) createResourceGroup(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	var cfg resourceGroupConfig
	if err := decodeProps(res.Properties, &cfg); err != nil {
		return nil, err
	}

	params := armresources.ResourceGroup{
		Location: to.Ptr(res.Region),
	}
	if len(cfg.Tags) > 0 {
		params.Tags = make(map[string]*string, len(cfg.Tags))
		for k, v := range cfg.Tags {
			params.Tags[k] = to.Ptr(v)
		}
	}

	// Resource group creation is synchronous; the response already carries
	// the terminal state.
	resp, err := p.groupsClient.CreateOrUpdate(ctx, res.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("create resource group %q: %w", res.Name, err)
	}

	return &provider.Created{
		ID: deref(resp.ID),
		Outputs: map[string]string{
			"id":   deref(resp.ID),
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) deleteResourceGroup(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse resource group id: %w", err)
	}
	poller, err := p.groupsClient.BeginDelete(ctx, rid.ResourceGroupName, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (p *Provider) getResourceGroup(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse resource group id: %w", err)
	}
	_, err = p.groupsClient.Get(ctx, rid.ResourceGroupName, nil)
	return err
}
