package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	armcosmos "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"

	"github.com/azsmoke-io/azsmoke/internal/provider"
)

type cosmosConfig struct {
	ResourceGroup string `json:"resourceGroup"`
	OfferType     string `json:"offerType"`
	Kind          string `json:"kind"`
}

func (p *Provider) createCosmosAccount(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	var cfg cosmosConfig
	if err := decodeProps(res.Properties, &cfg); err != nil {
		return nil, err
	}
	if cfg.ResourceGroup == "" {
		return nil, fmt.Errorf("cosmos account %q: resourceGroup is required", res.Name)
	}
	if cfg.OfferType == "" {
		cfg.OfferType = "Standard"
	}

	kind := armcosmos.DatabaseAccountKindGlobalDocumentDB
	if cfg.Kind != "" {
		kind = armcosmos.DatabaseAccountKind(cfg.Kind)
	}

	params := armcosmos.DatabaseAccountCreateUpdateParameters{
		Location: to.Ptr(res.Region),
		Kind:     to.Ptr(kind),
		Properties: &armcosmos.DatabaseAccountCreateUpdateProperties{
			DatabaseAccountOfferType: to.Ptr(cfg.OfferType),
			Locations: []*armcosmos.Location{
				{
					LocationName:     to.Ptr(res.Region),
					FailoverPriority: to.Ptr[int32](0),
				},
			},
		},
	}

	poller, err := p.cosmosClient.BeginCreateOrUpdate(ctx, cfg.ResourceGroup, res.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("create cosmos account %q: %w", res.Name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create cosmos account %q: %w", res.Name, err)
	}

	return &provider.Created{
		ID: deref(resp.ID),
		Outputs: map[string]string{
			"id":   deref(resp.ID),
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) deleteCosmosAccount(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse cosmos account id: %w", err)
	}
	poller, err := p.cosmosClient.BeginDelete(ctx, rid.ResourceGroupName, rid.Name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (p *Provider) getCosmosAccount(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse cosmos account id: %w", err)
	}
	_, err = p.cosmosClient.Get(ctx, rid.ResourceGroupName, rid.Name, nil)
	return err
}
