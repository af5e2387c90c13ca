package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yaroslav/sdtemplate/models"
)

func newGetVersionFromTagCmd(a *app) *cobra.Command {
	flags := &refFlags{}
	var tag string

	cmd := &cobra.Command{
		Use:     "get-version-from-tag",
		Aliases: []string{"get_version_from_tag"},
		Short:   "Print the version a tag points to",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := flags.ref(a)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}

			tagRef := models.TagReference{TemplateRef: ref, Tag: tag}
			version, err := client.GetVersionFromTag(a.operationContext(cmd, "get_version_from_tag"), tagRef)
			if err != nil {
				return err
			}

			result := models.OperationResult{
				Name:      ref.Name,
				Namespace: ref.Namespace,
				Tag:       tag,
				Version:   version,
			}
			return a.printResult(cmd, result, version)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "tag name (required)")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}
