package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/logging"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the template document",
		Long: `Send the template document to the registry validator.

Field errors reported by the registry are printed as JSON and the command
exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd)
		},
	}
}

func (a *app) runValidate(cmd *cobra.Command) error {
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

	ctx := a.operationContext(cmd, "validate")
	result, err := client.Validate(ctx, kind, cfg)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("template is valid",
		zap.String(logging.FieldKind, kind.String()),
		zap.String(logging.FieldTemplate, cfg.Name))

	return a.printResult(cmd, result, "Template is valid")
}
