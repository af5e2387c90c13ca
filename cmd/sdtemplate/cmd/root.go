package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yaroslav/sdtemplate/internal/config"
	"github.com/yaroslav/sdtemplate/internal/logging"
	"github.com/yaroslav/sdtemplate/models"
	"github.com/yaroslav/sdtemplate/pkg/template"
	"github.com/yaroslav/sdtemplate/sdk"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	kind    string
	jsonOut bool

	settings *config.Settings
	logger   *zap.Logger
}

// NewRootCmd builds the sdtemplate command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "sdtemplate",
		Short: "Manage templates in a Screwdriver template registry",
		Long: `sdtemplate validates, publishes, tags and removes templates in a
Screwdriver template registry.

The template document is read from ./sd-template.yaml unless --file or
SD_TEMPLATE_PATH says otherwise. Every request is authenticated with the
bearer token from --token or SD_TOKEN.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadSettings,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ~/.config/sdtemplate/config.yaml)")
	flags.String("api-url", sdk.DefaultBaseURL, "registry API root (env SD_API_URL)")
	flags.String("token", "", "bearer token (env SD_TOKEN)")
	flags.StringP("file", "f", template.DefaultPath, "template document (env SD_TEMPLATE_PATH)")
	flags.String("log-level", logging.DefaultConfig().Level, "log level (debug, info, warn, error)")
	flags.Bool("dev", false, "human-readable console logs")
	flags.Duration("timeout", sdk.DefaultTimeout, "HTTP request timeout")
	flags.StringVarP(&a.kind, "kind", "k", models.KindJob.String(), "template kind (job or pipeline)")
	flags.BoolVarP(&a.jsonOut, "json", "j", false, "output result as json")

	// Flags are registered above, so binding cannot fail
	_ = config.BindFlags(a.v, flags)

	rootCmd.AddCommand(
		newValidateCmd(a),
		newPublishCmd(a),
		newTagCmd(a),
		newRemoveTagCmd(a),
		newRemoveTemplateCmd(a),
		newRemoveVersionCmd(a),
		newGetVersionFromTagCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// loadSettings resolves settings and builds the logger before any subcommand runs.
func (a *app) loadSettings(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := logging.NewLogger(settings.LoggingConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))

	a.logger.Debug("settings loaded",
		zap.String("api_url", settings.APIURL),
		zap.String(logging.FieldFile, settings.TemplatePath),
		zap.String("config_file", settings.ConfigFile),
		zap.Bool("token_set", settings.Token != ""))

	return nil
}

// client returns a registry client for the resolved settings.
func (a *app) client() (*sdk.Client, error) {
	return sdk.NewClient(a.settings.ClientConfig(userAgent(), a.logger))
}

// templateKind parses the --kind flag.
func (a *app) templateKind() (models.Kind, error) {
	return models.ParseKind(a.kind)
}

// loadTemplate reads the configured template document.
func (a *app) loadTemplate() (*template.Config, error) {
	cfg, err := template.LoadConfig(a.settings.TemplatePath)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("template loaded",
		zap.String(logging.FieldFile, cfg.Path),
		zap.String(logging.FieldTemplate, cfg.Name),
		zap.String(logging.FieldVersion, cfg.Version))

	return cfg, nil
}

// templateRef builds a reference from the --name and --namespace flags.
func (a *app) templateRef(name, namespace string) (models.TemplateRef, error) {
	kind, err := a.templateKind()
	if err != nil {
		return models.TemplateRef{}, err
	}
	return models.TemplateRef{Kind: kind, Namespace: namespace, Name: name}, nil
}

func userAgent() string {
	return "sdtemplate/" + Version
}

// operationContext tags the command context with the logger and operation name.
func (a *app) operationContext(cmd *cobra.Command, operation string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, a.logger.With(zap.String(logging.FieldOperation, operation)))
}
