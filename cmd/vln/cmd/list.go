package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type registration struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	UUID   string `json:"uuid,omitempty"`
	Space  string `json:"space,omitempty"`
	Schema bool   `json:"schema"`
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tasks and sensors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runList(cmd)
		},
	}
}

func (c *cli) runList(cmd *cobra.Command) error {
	var regs []registration

	for _, name := range c.registry.Tasks() {
		_, ok := c.registry.EpisodeSchema(name)
		regs = append(regs, registration{Kind: "task", Name: name, Schema: ok})
	}
	for _, name := range c.registry.Sensors() {
		s, err := c.registry.NewSensor(name, c.cfg.Task.SensorConfigs[name])
		if err != nil {
			return err
		}
		_, ok := c.registry.SensorSchema(name)
		regs = append(regs, registration{
			Kind:   "sensor",
			Name:   name,
			UUID:   s.UUID(),
			Space:  s.ObservationSpace().String(),
			Schema: ok,
		})
	}

	out := cmd.OutOrStdout()
	if c.isJSONOutput() {
		return writeJSON(out, regs)
	}
	if len(regs) == 0 {
		fmt.Fprintln(out, "Nothing registered")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Kind", "Name", "UUID", "Observation Space", "Schema")
	for _, r := range regs {
		if err := table.Append(r.Kind, r.Name, r.UUID, r.Space, strconv.FormatBool(r.Schema)); err != nil {
			return err
		}
	}
	return table.Render()
}
