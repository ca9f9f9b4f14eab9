package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// NewContactsCommand creates the contacts command group.
func NewContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
	}

	cmd.AddCommand(newContactsGetCommand())
	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsCreateCommand())
	cmd.AddCommand(newContactsDeleteCommand())
	cmd.AddCommand(newContactsTagCommand())

	return cmd
}

func renderContacts(cmd *cobra.Command, contacts []activecampaign.Contact) error {
	if len(contacts) == 0 {
		printf(cmd, "No contacts found\n")

		return nil
	}

	return renderOutput(cmd, contacts, func(table *tablewriter.Table) error {
		table.Header("ID", "Email", "First name", "Last name", "Phone", "Created")

		for _, contact := range contacts {
			_ = table.Append(contact.ID, contact.Email, orNA(contact.FirstName), orNA(contact.LastName),
				orNA(contact.Phone), orNA(contact.CreatedDate))
		}

		return nil
	})
}

func newContactsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTACT_ID",
		Short: "Get contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			contact, err := client.Contacts().Get(commandContext(cmd), args[0])
			if err != nil {
				if activecampaign.IsNotFound(err) {
					return fmt.Errorf("contact '%s': %w", args[0], constants.ErrContactNotFound)
				}

				return fmt.Errorf("failed to get contact: %w", err)
			}

			return renderContacts(cmd, []activecampaign.Contact{*contact})
		},
	}
}

func newContactsListCommand() *cobra.Command {
	var (
		all    bool
		limit  int
		offset int
		email  string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if all {
				contacts, err := client.Contacts().ListAll(ctx, &activecampaign.PageOptions{Debug: viper.GetBool("verbose")})
				if err != nil {
					return fmt.Errorf("failed to list contacts: %w", err)
				}

				return renderContacts(cmd, contacts)
			}

			params := activecampaign.NewListParams().WithLimit(limit).WithOffset(offset)
			if email != "" {
				params.WithFilter("email", email)
			}

			if search != "" {
				params.WithFilter("search", search)
			}

			page, err := client.Contacts().List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			err = renderContacts(cmd, page.Items)
			if err != nil {
				return err
			}

			if total := page.Meta.Total.Int(); total > offset+len(page.Items) {
				printf(cmd, "\nShowing %d of %d contacts. Use --all to fetch every page.\n", len(page.Items), total)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset of the first result")
	cmd.Flags().StringVar(&email, "email", "", "filter by email")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, organization, phone or email")

	return cmd
}

func newContactsCreateCommand() *cobra.Command {
	var (
		request activecampaign.ContactRequest
		sync    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Long:  "Create a contact, or with --sync create it or update the contact with the same email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if request.Email == "" {
				return constants.ErrMissingContactData
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			create := client.Contacts().Create
			if sync {
				create = client.Contacts().Sync
			}

			contact, err := create(commandContext(cmd), &request)
			if err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}

			return renderContacts(cmd, []activecampaign.Contact{*contact})
		},
	}

	cmd.Flags().StringVar(&request.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&request.Phone, "phone", "", "phone number")
	cmd.Flags().BoolVar(&sync, "sync", false, "update the contact if the email already exists")

	return cmd
}

func newContactsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CONTACT_ID",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			err = client.Contacts().Delete(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete contact: %w", err)
			}

			printf(cmd, "Deleted contact %s\n", args[0])

			return nil
		},
	}
}

func newContactsTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag CONTACT_ID TAG_ID",
		Short: "Add a tag to a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			contactTag, err := client.Contacts().Tag(commandContext(cmd), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to tag contact: %w", err)
			}

			printf(cmd, "Tagged contact %s with tag %s (association %s)\n", contactTag.Contact, contactTag.Tag, contactTag.ID)

			return nil
		},
	}
}
