package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveTemplateCmd(a *app) *cobra.Command {
	flags := &refFlags{}

	cmd := &cobra.Command{
		Use:     "remove-template",
		Aliases: []string{"remove_template"},
		Short:   "Remove a template and all of its versions",
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

			result, err := client.RemoveTemplate(a.operationContext(cmd, "remove_template"), ref)
			if err != nil {
				return err
			}

			return a.printResult(cmd, result, fmt.Sprintf(
				"Template %s was successfully removed", ref.FullName()))
		},
	}

	flags.bind(cmd)

	return cmd
}

func newRemoveVersionCmd(a *app) *cobra.Command {
	flags := &refFlags{}
	var version string

	cmd := &cobra.Command{
		Use:     "remove-version",
		Aliases: []string{"remove_version"},
		Short:   "Remove a single version of a template",
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

			result, err := client.RemoveVersion(a.operationContext(cmd, "remove_version"), ref, version)
			if err != nil {
				return err
			}

			return a.printResult(cmd, result, fmt.Sprintf(
				"Version %s of template %s was successfully removed", result.Version, ref.FullName()))
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&version, "version", "v", "", "template version (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}
