package llm

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// RequestSigner adds authentication headers to an outbound request.
type RequestSigner interface {
	Sign(r *http.Request) error
}

// NopSigner leaves requests unsigned. It is meant for tests and for
// endpoints fronted by an authenticating proxy.
type NopSigner struct{}

func (NopSigner) Sign(*http.Request) error { return nil }

// Credentials is the resolved identity used to sign calls.
type Credentials struct {
	Region string
	Signer RequestSigner
}

// LoadCredentials reads an OCI SDK config file profile and returns a signer
// for it. region overrides the profile's region when non-empty.
func LoadCredentials(configFile, profile, region string) (*Credentials, error) {
	path, err := expandHome(configFile)
	if err != nil {
		return nil, err
	}
	provider, err := common.ConfigurationProviderFromFileWithProfile(path, profile, "")
	if err != nil {
		return nil, fmt.Errorf("could not read OCI config %s [%s]: %w", path, profile, err)
	}
	if ok, err := common.IsConfigurationProviderValid(provider); !ok {
		return nil, fmt.Errorf("incomplete OCI config %s [%s]: %w", path, profile, err)
	}
	if region == "" {
		region, err = provider.Region()
		if err != nil {
			return nil, fmt.Errorf("could not resolve OCI region: %w", err)
		}
	}
	return &Credentials{Region: region, Signer: common.DefaultRequestSigner(provider)}, nil
}

// InferenceEndpoint returns the public inference endpoint of region.
func InferenceEndpoint(region string) string {
	return fmt.Sprintf("https://inference.generativeai.%s.oci.oraclecloud.com", region)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
