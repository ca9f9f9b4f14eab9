package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/pkg/acclient"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// clientFactory builds the API client for a command. Tests replace it.
var clientFactory = func(ctx context.Context, config *activecampaign.Config) (activecampaign.Client, error) {
	return acclient.New(ctx, config)
}

// newLogger returns the CLI logger: warnings only, or everything with
// --verbose.
func newLogger(w io.Writer) activecampaign.Logger {
	level := hclog.Warn
	if viper.GetBool("verbose") || viper.GetBool("debug") {
		level = hclog.Debug
	}

	return activecampaign.NewHCLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "ac",
		Level:  level,
		Output: w,
	}))
}

// CreateClient builds an API client from flags, environment and config file.
func CreateClient(cmd *cobra.Command) (activecampaign.Client, error) {
	config := loadConfig()

	if config.URL == "" {
		return nil, constants.ErrURLRequired
	}

	if config.Token == "" {
		return nil, constants.ErrTokenRequired
	}

	acConfig := &activecampaign.Config{
		APIURL:             config.URL,
		APIToken:           config.Token,
		EventTrackingActID: config.EventTrackingActID,
		EventTrackingKey:   config.EventTrackingKey,
		RateLimit:          viper.GetFloat64("rate_limit"),
		Debug:              viper.GetBool("debug"),
		Logger:             newLogger(cmd.ErrOrStderr()),
	}

	if viper.GetBool("retry") {
		acConfig.Retry = activecampaign.DefaultRetryPolicy()
	}

	client, err := clientFactory(commandContext(cmd), acConfig)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.IndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.IndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderOutput writes data in the selected output format; table output is
// delegated to renderTable.
func renderOutput[T any](cmd *cobra.Command, data T, renderTable func(table *tablewriter.Table) error) error {
	w := cmd.OutOrStdout()

	switch output := viper.GetString("output"); output {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	case constants.FormatTable, "":
		table := tablewriter.NewWriter(w)

		err := renderTable(table)
		if err != nil {
			return err
		}

		err = table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, output)
	}
}

func orNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

// printf writes to the command's standard output.
func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// stdinFd is the descriptor prompted for secrets.
var stdinFd = int(os.Stdin.Fd())
