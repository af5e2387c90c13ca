package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
	"github.com/yaroslav/sdtemplate/models"
)

func newPublishCmd(a *app) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the template document and tag it",
		Long: `Publish the template document to the registry, then point a tag at the
published version. The tag defaults to "latest".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPublish(cmd, tag)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "latest", "tag to add to the published version")

	return cmd
}

func (a *app) runPublish(cmd *cobra.Command, tag string) error {
	kind, err := a.templateKind()
	if err != nil {
		return err
	}

	cfg, err := a.loadTemplate()
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	ctx := a.operationContext(cmd, "publish")
	published, err := client.Publish(ctx, kind, cfg)
	if err != nil {
		return err
	}

	ctx = logging.AddFields(ctx,
		zap.String(logging.FieldTemplate, published.Name),
		zap.String(logging.FieldVersion, published.Version))

	tagged, err := client.Tag(ctx, models.TagReference{
		TemplateRef: published.Template,
		Tag:         tag,
		Version:     published.Version,
	})
	if err != nil {
		logging.FromContext(ctx).Error("template published but tagging failed", zap.Error(err))
		return err
	}

	result := *tagged
	result.Name = published.Name

	logging.FromContext(ctx).Info("template published and tagged", zap.String(logging.FieldTag, result.Tag))

	return a.printResult(cmd, result, fmt.Sprintf(
		"Template %s@%s was successfully published and tagged as %s",
		result.Name, result.Version, result.Tag))
}
