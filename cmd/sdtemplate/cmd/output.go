package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaroslav/sdtemplate/models"
)

// printResult writes result as a single JSON line when --json is set,
// otherwise it writes text.
func (a *app) printResult(cmd *cobra.Command, result any, text string) error {
	out := cmd.OutOrStdout()

	if a.jsonOut {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	_, err := fmt.Fprintln(out, text)
	return err
}

// refFlags are the flags that identify a template on the command line.
type refFlags struct {
	name      string
	namespace string
}

func (f *refFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "template name (required)")
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "template namespace (pipeline templates)")
	_ = cmd.MarkFlagRequired("name")
}

func (f *refFlags) ref(a *app) (models.TemplateRef, error) {
	return a.templateRef(f.name, f.namespace)
}
