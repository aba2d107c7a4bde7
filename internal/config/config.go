package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sweeplabs/sweepd/utils"
)

type Config struct {
	PrivateKey        string
	Mnemonic          string
	MonitoredAddress  string
	CollectionAddress string
	WebhookSecret     string
	ResidualSun       int64
	FeeMarginSun      int64
	PermissionID      int32
	Network           string
	NodeURL           string
	APIKey            string
	HTTPPort          uint32
	LogLevel          uint32
	SentryDSN         string
}

var (
	PrivateKey        = "PRIVATE_KEY"
	Mnemonic          = "MNEMONIC"
	MonitoredAddress  = "MONITORED_ADDRESS"
	CollectionAddress = "COLLECTION_ADDRESS"
	WebhookSecret     = "WEBHOOK_SECRET"
	ResidualTRX       = "RESIDUAL_TRX"
	FeeMarginTRX      = "FEE_MARGIN_TRX"
	PermissionID      = "PERMISSION_ID"
	Network           = "NETWORK"
	NodeURL           = "NODE_URL"
	APIKey            = "API_KEY"
	HTTPPort          = "HTTP_PORT"
	LogLevel          = "LOG_LEVEL"
	SentryDSN         = "SENTRY_DSN"

	defaultResidualTRX  = "1"
	defaultFeeMarginTRX = "1.1"
	defaultPermissionID = 3
	defaultNetwork      = "mainnet"
	defaultHTTPPort     = 8000
	defaultLogLevel     = 4

	mainnetNodeURL = "https://api.trongrid.io"
	testnetNodeURL = "https://nile.trongrid.io"
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("SWEEPD")
	viper.AutomaticEnv()

	viper.SetDefault(ResidualTRX, defaultResidualTRX)
	viper.SetDefault(FeeMarginTRX, defaultFeeMarginTRX)
	viper.SetDefault(PermissionID, defaultPermissionID)
	viper.SetDefault(Network, defaultNetwork)
	viper.SetDefault(HTTPPort, defaultHTTPPort)
	viper.SetDefault(LogLevel, defaultLogLevel)

	config := &Config{
		PrivateKey:        viper.GetString(PrivateKey),
		Mnemonic:          viper.GetString(Mnemonic),
		MonitoredAddress:  viper.GetString(MonitoredAddress),
		CollectionAddress: viper.GetString(CollectionAddress),
		WebhookSecret:     viper.GetString(WebhookSecret),
		PermissionID:      viper.GetInt32(PermissionID),
		Network:           viper.GetString(Network),
		NodeURL:           viper.GetString(NodeURL),
		APIKey:            viper.GetString(APIKey),
		HTTPPort:          viper.GetUint32(HTTPPort),
		LogLevel:          viper.GetUint32(LogLevel),
		SentryDSN:         viper.GetString(SentryDSN),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	residual, err := utils.TRXToSun(viper.GetString(ResidualTRX))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ResidualTRX, err)
	}
	margin, err := utils.TRXToSun(viper.GetString(FeeMarginTRX))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FeeMarginTRX, err)
	}
	if residual < 0 || margin < 0 {
		return nil, fmt.Errorf("residual and fee margin must be non-negative")
	}
	config.ResidualSun = residual
	config.FeeMarginSun = margin

	if config.NodeURL == "" {
		config.NodeURL = mainnetNodeURL
		if config.Network == "testnet" {
			config.NodeURL = testnetNodeURL
		}
	}
	if config.APIKey == "" {
		log.Warn("no API key configured, using free tier with rate limits")
	}

	return config, nil
}

func (c *Config) validate() error {
	missing := make([]string, 0)
	if c.PrivateKey == "" && c.Mnemonic == "" {
		missing = append(missing, PrivateKey)
	}
	if c.MonitoredAddress == "" {
		missing = append(missing, MonitoredAddress)
	}
	if c.CollectionAddress == "" {
		missing = append(missing, CollectionAddress)
	}
	if c.WebhookSecret == "" {
		missing = append(missing, WebhookSecret)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.PrivateKey != "" && c.Mnemonic != "" {
		return fmt.Errorf("set either %s or %s, not both", PrivateKey, Mnemonic)
	}
	if c.PrivateKey != "" {
		if err := utils.IsValidPrivateKey(c.PrivateKey); err != nil {
			return fmt.Errorf("invalid %s: %w", PrivateKey, err)
		}
	}
	if c.Mnemonic != "" {
		if err := utils.IsValidMnemonic(c.Mnemonic); err != nil {
			return fmt.Errorf("invalid %s: %w", Mnemonic, err)
		}
	}

	if !utils.IsValidAddress(c.MonitoredAddress) {
		return fmt.Errorf("invalid %s format: %s", MonitoredAddress, c.MonitoredAddress)
	}
	if !utils.IsValidAddress(c.CollectionAddress) {
		return fmt.Errorf("invalid %s format: %s", CollectionAddress, c.CollectionAddress)
	}

	if c.PermissionID < 0 {
		return fmt.Errorf("%s must be non-negative", PermissionID)
	}
	return nil
}
