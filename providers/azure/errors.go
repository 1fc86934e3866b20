package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// isNotFound classifies ARM error responses that mean the resource (or its
// parent scope) is already gone. Deletion treats these as success.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	if respErr.StatusCode == http.StatusNotFound {
		return true
	}
	switch respErr.ErrorCode {
	case "ResourceNotFound", "ResourceGroupNotFound", "NotFound", "ParentResourceNotFound":
		return true
	}
	return false
}
