package speech

import (
	"fmt"
	"strings"

	speechmodel "github.com/plantpal/backend/internal/model/speech"
)

// resolveCredentials returns the normalized AppID and AccessToken, with a
// clear error when either is missing.
func resolveCredentials(cfg *speechmodel.Config) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("speech configuration is not initialized")
	}

	appID := strings.TrimSpace(cfg.AppID)
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		token = strings.TrimSpace(cfg.APIKey)
	}

	if appID == "" || token == "" {
		return "", "", fmt.Errorf("speech configuration is missing AppID or AccessToken")
	}

	return appID, token, nil
}
