// Package azure implements the provider contract against the Azure
// Resource Manager control plane. Every operation is awaited to its
// terminal state: long-running operations go through Begin* pollers with
// PollUntilDone, synchronous operations return terminal state directly.
// Credentials and transport-level concerns live entirely inside the SDK.
package azure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	armcosmos "github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

// Options configure the Azure provider.
type Options struct {
	SubscriptionID string

	// Credential overrides the default credential chain. Nil means
	// azidentity.NewDefaultAzureCredential.
	Credential azcore.TokenCredential

	// ClientOptions are passed to every ARM client.
	ClientOptions *arm.ClientOptions
}

// Provider holds one ARM client per service, constructed once up front.
type Provider struct {
	subscriptionID string

	groupsClient     *armresources.ResourceGroupsClient
	cosmosClient     *armcosmos.DatabaseAccountsClient
	namespacesClient *armeventhub.NamespacesClient
	hubsClient       *armeventhub.EventHubsClient
	diagClient       *armmonitor.DiagnosticSettingsClient
}

var _ provider.Interface = (*Provider)(nil)

func New(opts Options) (*Provider, error) {
	if opts.SubscriptionID == "" {
		return nil, fmt.Errorf("azure: subscription ID is required")
	}

	cred := opts.Credential
	if cred == nil {
		var err error
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("azure: failed to obtain credential: %w", err)
		}
	}

	groupsClient, err := armresources.NewResourceGroupsClient(opts.SubscriptionID, cred, opts.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("azure: resource groups client: %w", err)
	}
	cosmosClient, err := armcosmos.NewDatabaseAccountsClient(opts.SubscriptionID, cred, opts.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("azure: cosmos client: %w", err)
	}
	namespacesClient, err := armeventhub.NewNamespacesClient(opts.SubscriptionID, cred, opts.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("azure: namespaces client: %w", err)
	}
	hubsClient, err := armeventhub.NewEventHubsClient(opts.SubscriptionID, cred, opts.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("azure: event hubs client: %w", err)
	}
	diagClient, err := armmonitor.NewDiagnosticSettingsClient(cred, opts.ClientOptions)
	if err != nil {
		return nil, fmt.Errorf("azure: diagnostic settings client: %w", err)
	}

	return &Provider{
		subscriptionID:   opts.SubscriptionID,
		groupsClient:     groupsClient,
		cosmosClient:     cosmosClient,
		namespacesClient: namespacesClient,
		hubsClient:       hubsClient,
		diagClient:       diagClient,
	}, nil
}

// CreateOrUpdate dispatches on resource kind and blocks until the ARM
// operation reports a terminal state.
func (p *Provider) CreateOrUpdate(ctx context.Context, res provider.Resource) (*provider.Created, error) {
	switch res.Kind {
	case plan.KindResourceGroup:
		return p.createResourceGroup(ctx, res)
	case plan.KindCosmosAccount:
		return p.createCosmosAccount(ctx, res)
	case plan.KindEventHubNamespace:
		return p.createNamespace(ctx, res)
	case plan.KindEventHub:
		return p.createEventHub(ctx, res)
	case plan.KindAuthorizationRule:
		return p.createAuthorizationRule(ctx, res)
	case plan.KindDiagnosticSetting:
		return p.createDiagnosticSetting(ctx, res)
	default:
		return nil, fmt.Errorf("azure: unsupported resource kind %q", res.Kind)
	}
}

// Delete removes a resource by its ARM identifier. Identifiers that no
// longer resolve to a resource are success, not an error.
func (p *Provider) Delete(ctx context.Context, kind plan.Kind, id string) error {
	var err error
	switch kind {
	case plan.KindResourceGroup:
		err = p.deleteResourceGroup(ctx, id)
	case plan.KindCosmosAccount:
		err = p.deleteCosmosAccount(ctx, id)
	case plan.KindEventHubNamespace:
		err = p.deleteNamespace(ctx, id)
	case plan.KindEventHub:
		err = p.deleteEventHub(ctx, id)
	case plan.KindAuthorizationRule:
		err = p.deleteAuthorizationRule(ctx, id)
	case plan.KindDiagnosticSetting:
		err = p.deleteDiagnosticSetting(ctx, id)
	default:
		return fmt.Errorf("azure: unsupported resource kind %q", kind)
	}
	if isNotFound(err) {
		return nil
	}
	return err
}

// Get reports whether the identified resource currently exists.
func (p *Provider) Get(ctx context.Context, kind plan.Kind, id string) (bool, error) {
	var err error
	switch kind {
	case plan.KindResourceGroup:
		err = p.getResourceGroup(ctx, id)
	case plan.KindCosmosAccount:
		err = p.getCosmosAccount(ctx, id)
	case plan.KindEventHubNamespace:
		err = p.getNamespace(ctx, id)
	case plan.KindEventHub:
		err = p.getEventHub(ctx, id)
	case plan.KindAuthorizationRule:
		err = p.getAuthorizationRule(ctx, id)
	case plan.KindDiagnosticSetting:
		err = p.getDiagnosticSetting(ctx, id)
	default:
		return false, fmt.Errorf("azure: unsupported resource kind %q", kind)
	}
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deref unwraps an optional SDK string pointer.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// decodeProps round-trips resolved descriptor properties into a typed
// per-kind config struct.
func decodeProps(props map[string]any, out any) error {
	raw, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("azure: encoding properties: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("azure: decoding properties: %w", err)
	}
	return nil
}
