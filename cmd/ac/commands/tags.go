package commands

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsCreateCommand())

	return cmd
}

func tagsTable(tags []activecampaign.Tag) func(table *tablewriter.Table) error {
	return func(table *tablewriter.Table) error {
		table.Header("ID", "Tag", "Type", "Subscribers", "Description")

		title := cases.Title(language.English)

		for _, tag := range tags {
			_ = table.Append(tag.ID, tag.Tag, title.String(tag.TagType), strconv.Itoa(tag.SubscriberCount.Int()), orNA(tag.Description))
		}

		return nil
	}
}

func newTagsListCommand() *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			params := activecampaign.NewListParams().WithLimit(limit)
			if search != "" {
				params.WithFilter("search", search)
			}

			page, err := client.Tags().List(commandContext(cmd), params)
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			return renderOutput(cmd, page.Items, tagsTable(page.Items))
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by tag name")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultListLimit, "results per page")

	return cmd
}

func newTagsCreateCommand() *cobra.Command {
	var request activecampaign.TagCreateRequest

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			request.Tag = args[0]

			tag, err := client.Tags().Create(commandContext(cmd), &request)
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			tags := []activecampaign.Tag{*tag}

			return renderOutput(cmd, tags, tagsTable(tags))
		},
	}

	cmd.Flags().StringVar(&request.TagType, "type", constants.TagTypeContact, "tag type (contact or template)")
	cmd.Flags().StringVar(&request.Description, "description", "", "tag description")

	return cmd
}
