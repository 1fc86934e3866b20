package plan

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Resource names follow the pattern {prefix}-{role}-{suffix}. The random
// suffix keeps repeated runs against the same subscription from colliding
// on globally-unique namespaces such as Cosmos account names.

const suffixLen = 6

// RandomSuffix returns a lowercase hex string of suffixLen characters drawn
// from crypto/rand.
func RandomSuffix() string {
	buf := make([]byte, (suffixLen+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// sensible fallback for collision-resistant names.
		panic(fmt.Sprintf("plan: reading random suffix: %v", err))
	}
	return hex.EncodeToString(buf)[:suffixLen]
}

func resourceGroupName(prefix, suffix string) string {
	return fmt.Sprintf("%s-rg-%s", prefix, suffix)
}

// Cosmos account names must be globally unique, lowercase alphanumeric
// plus hyphens, 3-44 characters.
func cosmosAccountName(prefix, suffix string) string {
	return strings.ToLower(fmt.Sprintf("%s-cosmos-%s", prefix, suffix))
}

func namespaceName(prefix, suffix string) string {
	return fmt.Sprintf("%s-ns-%s", prefix, suffix)
}

func eventHubName(prefix, suffix string) string {
	return fmt.Sprintf("%s-hub-%s", prefix, suffix)
}

func authorizationRuleName(prefix, suffix string) string {
	return fmt.Sprintf("%s-sendlisten-%s", prefix, suffix)
}

func diagnosticSettingName(prefix, suffix string) string {
	return fmt.Sprintf("%s-diag-%s", prefix, suffix)
}
