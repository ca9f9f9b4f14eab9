package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	URL                string `json:"url,omitempty"         yaml:"url,omitempty"`
	Token              string `json:"token,omitempty"       yaml:"token,omitempty"`
	EventTrackingActID string `json:"event_actid,omitempty" yaml:"event_actid,omitempty"`
	EventTrackingKey   string `json:"event_key,omitempty"   yaml:"event_key,omitempty"`
	Output             string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// configKeys maps settable keys to their Config field.
var configKeys = map[string]func(c *Config) *string{
	"url":         func(c *Config) *string { return &c.URL },
	"token":       func(c *Config) *string { return &c.Token },
	"event_actid": func(c *Config) *string { return &c.EventTrackingActID },
	"event_key":   func(c *Config) *string { return &c.EventTrackingKey },
	"output":      func(c *Config) *string { return &c.Output },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the account URL, API token and event tracking credentials",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetTokenCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func loadConfig() *Config {
	return &Config{
		URL:                viper.GetString("url"),
		Token:              viper.GetString("token"),
		EventTrackingActID: viper.GetString("event_actid"),
		EventTrackingKey:   viper.GetString("event_key"),
		Output:             viper.GetString("output"),
	}
}

// loadStoredConfig reads only the config file, so flags and environment are
// not written back by set and unset.
func loadStoredConfig() (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(configFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ac", "config.yml")
	}

	return filepath.Join(home, ".ac", "config.yml")
}

func saveConfig(config *Config) error {
	configFile := configFilePath()

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	visible := constants.SecretVisibleChars
	if len(secret) <= visible*2 {
		return constants.MaskedSecret
	}

	return secret[:visible] + constants.MaskedSecret + secret[len(secret)-visible:]
}

func newConfigShowCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags, environment and config file are merged",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if !showSecrets {
				config.Token = maskSecret(config.Token)
				config.EventTrackingKey = maskSecret(config.EventTrackingKey)
			}

			return renderOutput(cmd, config, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				_ = table.Append("URL", orNA(config.URL))
				_ = table.Append("Token", orNA(config.Token))
				_ = table.Append("Event tracking actid", orNA(config.EventTrackingActID))
				_ = table.Append("Event tracking key", orNA(config.EventTrackingKey))
				_ = table.Append("Config file", orNA(viper.ConfigFileUsed()))

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the token and tracking key unmasked")

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: " + strings.Join(sortedConfigKeys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], "")
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Store the API token",
		Long:  "Prompt for the API token without echoing it and store it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API token: ")

			tokenBytes, err := term.ReadPassword(stdinFd)
			_, _ = fmt.Fprintln(cmd.ErrOrStderr())

			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			token := strings.TrimSpace(string(tokenBytes))
			if token == "" {
				return constants.ErrEmptyToken
			}

			return setConfigValue(cmd, "token", token)
		},
	}
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	field, ok := configKeys[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(sortedConfigKeys(), ", "))
	}

	config, err := loadStoredConfig()
	if err != nil {
		return err
	}

	*field(config) = value

	err = saveConfig(config)
	if err != nil {
		return err
	}

	if value == "" {
		printf(cmd, "Removed %s\n", key)
	} else {
		printf(cmd, "Set %s\n", key)
	}

	return nil
}

func sortedConfigKeys() []string {
	return []string{"event_actid", "event_key", "output", "token", "url"}
}
