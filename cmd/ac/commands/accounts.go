package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage accounts",
	}

	cmd.AddCommand(newAccountsGetCommand())
	cmd.AddCommand(newAccountsListCommand())

	return cmd
}

func accountsTable(accounts []activecampaign.Account) func(table *tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("ID", "Name", "URL", "Contacts", "Deals", "Created")

		for _, account := range accounts {
			_ = table.Append(account.ID, account.Name, orNA(account.AccountURL),
				strconv.Itoa(account.ContactCount.Int()), strconv.Itoa(account.DealCount.Int()),
				orNA(account.CreatedTimestamp))
		}

		return nil
	}
}

func newAccountsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Get account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			account, err := client.Accounts().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			accounts := []activecampaign.Account{*account}

			return renderOutput(cmd, accounts, accountsTable(accounts))
		},
	}
}

func newAccountsListCommand() *cobra.Command {
	var (
		all              bool
		withCustomFields bool
		limit            int
		offset           int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Long:  "List accounts. --with-custom-fields walks every page and includes custom field values and definitions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			opts := &activecampaign.PageOptions{Debug: viper.GetBool("verbose")}

			switch {
			case withCustomFields:
				result, err := client.Accounts().ListAllWithCustomFields(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list accounts: %w", err)
				}

				return renderOutput(cmd, result, func(table *tablewriter.Table) error {
					err := accountsTable(result.Accounts)(table)
					printf(cmd, "%d accounts, %d custom field values, %d custom fields\n",
						len(result.Accounts), len(result.CustomFields), len(result.CustomFieldsMeta))

					return err
				})
			case all:
				accounts, err := client.Accounts().ListAll(ctx, opts)
				if err != nil {
					return fmt.Errorf("failed to list accounts: %w", err)
				}

				return renderOutput(cmd, accounts, accountsTable(accounts))
			default:
				page, err := client.Accounts().List(ctx, activecampaign.NewListParams().WithLimit(limit).WithOffset(offset))
				if err != nil {
					return fmt.Errorf("failed to list accounts: %w", err)
				}

				return renderOutput(cmd, page.Items, accountsTable(page.Items))
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().BoolVar(&withCustomFields, "with-custom-fields", false, "include custom field data (implies --all)")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset of the first result")

	return cmd
}
