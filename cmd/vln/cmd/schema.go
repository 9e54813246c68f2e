package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embodied-nav/vln-sdk/domain/errors"
)

func newSchemaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <task|sensor> <name>",
		Short: "Print the JSON schema of a task's episodes or a sensor's observations",
		Example: `  vln schema task VLN-v0
  vln schema sensor InstructionSensor`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"task", "sensor"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchema(cmd, args[0], args[1])
		},
	}
}

func (c *cli) runSchema(cmd *cobra.Command, kind, name string) error {
	var (
		schema string
		ok     bool
	)
	switch kind {
	case "task":
		schema, ok = c.registry.EpisodeSchema(name)
	case "sensor":
		schema, ok = c.registry.SensorSchema(name)
	default:
		return fmt.Errorf("unknown kind %q: want task or sensor", kind)
	}
	if !ok {
		return &errors.RegistryError{Kind: kind, Name: name, Op: "lookup", Err: errors.ErrNotFound}
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), schema)
	return err
}
