package main

import (
	"strings"

	"blossom/internal/config"
)

// commandContext resolves the daemon address and token lazily so commands
// that never touch the API (config init) don't require a config file.
type commandContext struct {
	addressFlag *string
	tokenFlag   *string
	configFlag  *string
}

func newCommandContext(addressFlag, tokenFlag, configFlag *string) *commandContext {
	return &commandContext{
		addressFlag: addressFlag,
		tokenFlag:   tokenFlag,
		configFlag:  configFlag,
	}
}

func (c *commandContext) client() (*client, error) {
	address := strings.TrimSpace(*c.addressFlag)
	token := strings.TrimSpace(*c.tokenFlag)
	if address != "" {
		return newClient(address, token), nil
	}

	cfg, _, _, err := config.Load(strings.TrimSpace(*c.configFlag))
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = cfg.Paths.APIToken
	}
	return newClient(cfg.Paths.APIBind, token), nil
}
