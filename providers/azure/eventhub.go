package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"

	"github.com/azsmoke-io/azsmoke/internal/provider"
)

type namespaceConfig struct {
	ResourceGroup string `json:"resourceGroup"`
	SKU           string `json:"sku"`
	Capacity      int32  `json:"capacity"`
}

type eventHubConfig struct {
	ResourceGroup        string `json:"resourceGroup"`
	Namespace            string `json:"namespace"`
	PartitionCount       int64  `json:"partitionCount"`
	MessageRetentionDays int64  `json:"messageRetentionDays"`
}

type authorizationRuleConfig struct {
	ResourceGroup string   `json:"resourceGroup"`
	Namespace     string   `json:"namespace"`
	Rights        []string `json:"rights"`
}

func (p *Provider) createNamespace(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	var cfg namespaceConfig
	if err := decodeProps(res.Properties, &cfg); err != nil {
		return nil, err
	}
	if cfg.ResourceGroup == "" {
		return nil, fmt.Errorf("event hub namespace %q: resourceGroup is required", res.Name)
	}
	sku, tier, err := namespaceSKU(cfg.SKU)
	if err != nil {
		return nil, fmt.Errorf("event hub namespace %q: %w", res.Name, err)
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	params := armeventhub.EHNamespace{
		Location: to.Ptr(res.Region),
		SKU: &armeventhub.SKU{
			Name:     to.Ptr(sku),
			Tier:     to.Ptr(tier),
			Capacity: to.Ptr(capacity),
		},
	}

	poller, err := p.namespacesClient.BeginCreateOrUpdate(ctx, cfg.ResourceGroup, res.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("create event hub namespace %q: %w", res.Name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create event hub namespace %q: %w", res.Name, err)
	}

	return &provider.Created{
		ID: deref(resp.ID),
		Outputs: map[string]string{
			"id":   deref(resp.ID),
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) deleteNamespace(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse namespace id: %w", err)
	}
	poller, err := p.namespacesClient.BeginDelete(ctx, rid.ResourceGroupName, rid.Name, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

func (p *Provider) getNamespace(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse namespace id: %w", err)
	}
	_, err = p.namespacesClient.Get(ctx, rid.ResourceGroupName, rid.Name, nil)
	return err
}

func (p *Provider) createEventHub(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	var cfg eventHubConfig
	if err := decodeProps(res.Properties, &cfg); err != nil {
		return nil, err
	}
	if cfg.ResourceGroup == "" || cfg.Namespace == "" {
		return nil, fmt.Errorf("event hub %q: resourceGroup and namespace are required", res.Name)
	}
	if cfg.PartitionCount <= 0 {
		cfg.PartitionCount = 2
	}
	if cfg.MessageRetentionDays <= 0 {
		cfg.MessageRetentionDays = 1
	}

	params := armeventhub.Eventhub{
		Properties: &armeventhub.Properties{
			PartitionCount:         to.Ptr(cfg.PartitionCount),
			MessageRetentionInDays: to.Ptr(cfg.MessageRetentionDays),
		},
	}

	// Event hub creation inside an existing namespace is synchronous.
	resp, err := p.hubsClient.CreateOrUpdate(ctx, cfg.ResourceGroup, cfg.Namespace, res.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("create event hub %q: %w", res.Name, err)
	}

	return &provider.Created{
		ID: deref(resp.ID),
		Outputs: map[string]string{
			"id":   deref(resp.ID),
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) deleteEventHub(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse event hub id: %w", err)
	}
	_, err = p.hubsClient.Delete(ctx, rid.ResourceGroupName, rid.Parent.Name, rid.Name, nil)
	return err
}

func (p *Provider) getEventHub(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse event hub id: %w", err)
	}
	_, err = p.hubsClient.Get(ctx, rid.ResourceGroupName, rid.Parent.Name, rid.Name, nil)
	return err
}

func (p *Provider) createAuthorizationRule(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	var cfg authorizationRuleConfig
	if err := decodeProps(res.Properties, &cfg); err != nil {
		return nil, err
	}
	if cfg.ResourceGroup == "" || cfg.Namespace == "" {
		return nil, fmt.Errorf("authorization rule %q: resourceGroup and namespace are required", res.Name)
	}
	rights, err := accessRights(cfg.Rights)
	if err != nil {
		return nil, fmt.Errorf("authorization rule %q: %w", res.Name, err)
	}

	params := armeventhub.AuthorizationRule{
		Properties: &armeventhub.AuthorizationRuleProperties{
			Rights: rights,
		},
	}

	resp, err := p.namespacesClient.CreateOrUpdateAuthorizationRule(ctx, cfg.ResourceGroup, cfg.Namespace, res.Name, params, nil)
	if err != nil {
		return nil, fmt.Errorf("create authorization rule %q: %w", res.Name, err)
	}

	return &provider.Created{
		ID: deref(resp.ID),
		Outputs: map[string]string{
			"id":   deref(resp.ID),
			"name": res.Name,
		},
	}, nil
}

func (p *Provider) deleteAuthorizationRule(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse authorization rule id: %w", err)
	}
	_, err = p.namespacesClient.DeleteAuthorizationRule(ctx, rid.ResourceGroupName, rid.Parent.Name, rid.Name, nil)
	return err
}

func (p *Provider) getAuthorizationRule(ctx context.Context, id string) error {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return fmt.Errorf("parse authorization rule id: %w", err)
	}
	_, err = p.namespacesClient.GetAuthorizationRule(ctx, rid.ResourceGroupName, rid.Parent.Name, rid.Name, nil)
	return err
}

func namespaceSKU(name string) (armeventhub.SKUName, armeventhub.SKUTier, error) {
	switch name {
	case "", "Standard":
		return armeventhub.SKUNameStandard, armeventhub.SKUTierStandard, nil
	case "Basic":
		return armeventhub.SKUNameBasic, armeventhub.SKUTierBasic, nil
	case "Premium":
		return armeventhub.SKUNamePremium, armeventhub.SKUTierPremium, nil
	default:
		return "", "", fmt.Errorf("unknown namespace SKU %q", name)
	}
}

func accessRights(names []string) ([]*armeventhub.AccessRights, error) {
	if len(names) == 0 {
		names = []string{"Send", "Listen"}
	}
	out := make([]*armeventhub.AccessRights, 0, len(names))
	for _, n := range names {
		switch n {
		case "Send":
			out = append(out, to.Ptr(armeventhub.AccessRightsSend))
		case "Listen":
			out = append(out, to.Ptr(armeventhub.AccessRightsListen))
		case "Manage":
			out = append(out, to.Ptr(armeventhub.AccessRightsManage))
		default:
			return nil, fmt.Errorf("unknown access right %q", n)
		}
	}
	return out, nil
}
