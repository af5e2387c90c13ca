package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaroslav/sdtemplate/models"
)

type tagOptions struct {
	refFlags
	tag     string
	version string
	delete  bool
}

func newTagCmd(a *app) *cobra.Command {
	opts := &tagOptions{}

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Point a tag at a template version",
		Long: `Point a tag at a template version. Without --version the latest
published version is looked up first.

With --delete the tag is removed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.delete {
				return a.runRemoveTag(cmd, opts)
			}
			return a.runTag(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "tag name (required)")
	cmd.Flags().StringVarP(&opts.version, "version", "v", "", "template version (default: latest)")
	cmd.Flags().BoolVar(&opts.delete, "delete", false, "remove the tag instead of adding it")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func newRemoveTagCmd(a *app) *cobra.Command {
	opts := &tagOptions{}

	cmd := &cobra.Command{
		Use:     "remove-tag",
		Aliases: []string{"remove_tag"},
		Short:   "Remove a tag from a template",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRemoveTag(cmd, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "tag name (required)")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func (o *tagOptions) tagRef(a *app) (models.TagReference, error) {
	ref, err := o.ref(a)
	if err != nil {
		return models.TagReference{}, err
	}
	return models.TagReference{TemplateRef: ref, Tag: o.tag, Version: o.version}, nil
}

func (a *app) runTag(cmd *cobra.Command, opts *tagOptions) error {
	ref, err := opts.tagRef(a)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	result, err := client.Tag(a.operationContext(cmd, "tag"), ref)
	if err != nil {
		return err
	}

	return a.printResult(cmd, result, fmt.Sprintf(
		"Template %s@%s was successfully tagged as %s",
		ref.FullName(), result.Version, result.Tag))
}

func (a *app) runRemoveTag(cmd *cobra.Command, opts *tagOptions) error {
	ref, err := opts.tagRef(a)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	result, err := client.RemoveTag(a.operationContext(cmd, "remove_tag"), ref)
	if err != nil {
		return err
	}

	return a.printResult(cmd, result, fmt.Sprintf(
		"Tag %s was successfully removed from %s", ref.Tag, ref.FullName()))
}
