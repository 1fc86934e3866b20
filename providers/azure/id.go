package azure

import (
	"fmt"
	"strings"

	"github.com/azsmoke-io/azsmoke/internal/plan"
	"github.com/azsmoke-io/azsmoke/internal/provider"
)

// ResourceID computes the ARM identifier a resource will carry once
// created, without calling the control plane. ARM identifiers are fully
// determined by subscription, resource group and names, which is what lets
// cleanup target a resource whose create never reported a terminal state.
func (p *Provider) ResourceID(res provider.Resource) (string, error) {
	switch res.Kind {
	case plan.KindResourceGroup:
		return resourceGroupID(p.subscriptionID, res.Name), nil
	case plan.KindCosmosAccount:
		rg, err := stringProp(res.Properties, "resourceGroup")
		if err != nil {
			return "", err
		}
		return resourceGroupID(p.subscriptionID, rg) + "/providers/Microsoft.DocumentDB/databaseAccounts/" + res.Name, nil
	case plan.KindEventHubNamespace:
		rg, err := stringProp(res.Properties, "resourceGroup")
		if err != nil {
			return "", err
		}
		return namespaceID(p.subscriptionID, rg, res.Name), nil
	case plan.KindEventHub:
		rg, err := stringProp(res.Properties, "resourceGroup")
		if err != nil {
			return "", err
		}
		ns, err := stringProp(res.Properties, "namespace")
		if err != nil {
			return "", err
		}
		return namespaceID(p.subscriptionID, rg, ns) + "/eventhubs/" + res.Name, nil
	case plan.KindAuthorizationRule:
		rg, err := stringProp(res.Properties, "resourceGroup")
		if err != nil {
			return "", err
		}
		ns, err := stringProp(res.Properties, "namespace")
		if err != nil {
			return "", err
		}
		return namespaceID(p.subscriptionID, rg, ns) + "/authorizationRules/" + res.Name, nil
	case plan.KindDiagnosticSetting:
		scope, err := stringProp(res.Properties, "scope")
		if err != nil {
			return "", err
		}
		return diagnosticSettingID(scope, res.Name), nil
	default:
		return "", fmt.Errorf("azure: unsupported resource kind %q", res.Kind)
	}
}

func resourceGroupID(subscriptionID, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, name)
}

func namespaceID(subscriptionID, resourceGroup, name string) string {
	return resourceGroupID(subscriptionID, resourceGroup) + "/providers/Microsoft.EventHub/namespaces/" + name
}

func diagnosticSettingID(scope, name string) string {
	return scope + "/providers/Microsoft.Insights/diagnosticSettings/" + name
}

const diagnosticSettingMarker = "/providers/microsoft.insights/diagnosticsettings/"

// splitDiagnosticSettingID breaks a diagnostic setting identifier into the
// scope it is attached to and the setting name. Diagnostic settings are
// extension resources, so the scope is an arbitrary resource identifier
// rather than a fixed hierarchy.
func splitDiagnosticSettingID(id string) (scope, name string, err error) {
	idx := strings.Index(strings.ToLower(id), diagnosticSettingMarker)
	if idx < 0 {
		return "", "", fmt.Errorf("azure: %q is not a diagnostic setting identifier", id)
	}
	scope = id[:idx]
	name = id[idx+len(diagnosticSettingMarker):]
	if scope == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("azure: %q is not a diagnostic setting identifier", id)
	}
	return scope, name, nil
}

func stringProp(props map[string]any, key string) (string, error) {
	v, ok := props[key]
	if !ok {
		return "", fmt.Errorf("azure: property %q is required", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("azure: property %q must be a non-empty string", key)
	}
	return s, nil
}
