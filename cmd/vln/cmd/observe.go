package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	vln "github.com/embodied-nav/vln-sdk"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/domain/ports"
)

// observationRecord is one observation bundle of one episode.
type observationRecord struct {
	EpisodeID    string                `json:"episode_id"`
	Step         int                   `json:"step"`
	Observations entities.Observations `json:"observations"`
}

type observeOptions struct {
	episodeID string
	limit     int
	steps     int
}

func newObserveCmd(c *cli) *cobra.Command {
	opts := &observeOptions{}
	cmd := &cobra.Command{
		Use:   "observe [dataset]",
		Short: "Reset the configured task on each episode and print its observations",
		Long: `Build the configured task with its sensors, reset it on every episode of the
dataset and print the observations. With --steps the task is also stepped
until the episode ends or the step count is reached.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.cfg.Dataset.Path = args[0]
			}
			return c.runObserve(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.episodeID, "episode", "", "only observe the episode with this id")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "observe at most this many episodes (0 means all)")
	cmd.Flags().IntVar(&opts.steps, "steps", 0, "steps to take after reset")
	return cmd
}

func (c *cli) runObserve(cmd *cobra.Command, opts *observeOptions) error {
	ds, err := vln.LoadDataset(c.registry, c.cfg)
	if err != nil {
		return err
	}

	episodes := ds.Episodes
	if opts.episodeID != "" {
		ep := ds.Episode(opts.episodeID)
		if ep == nil {
			return fmt.Errorf("episode %q not found in %s", opts.episodeID, c.cfg.Dataset.Path)
		}
		episodes = []*entities.VLNEpisode{ep}
	}
	if opts.limit > 0 && len(episodes) > opts.limit {
		episodes = episodes[:opts.limit]
	}

	t, err := c.registry.NewTask(c.cfg.Task)
	if err != nil {
		return err
	}

	var records []observationRecord
	for _, ep := range episodes {
		recs, err := rollout(t, ep, opts.steps)
		if err != nil {
			return err
		}
		records = append(records, recs...)
	}

	out := cmd.OutOrStdout()
	if c.isJSONOutput() {
		enc := json.NewEncoder(out)
		for _, r := range records {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	uuids := make([]string, 0, len(t.ObservationSpaces()))
	for uuid := range t.ObservationSpaces() {
		uuids = append(uuids, uuid)
	}
	slices.Sort(uuids)

	table := tablewriter.NewWriter(out)
	table.Header(append([]any{"Episode", "Step"}, toAny(uuids)...)...)
	for _, r := range records {
		row := []any{r.EpisodeID, strconv.Itoa(r.Step)}
		for _, uuid := range uuids {
			b, err := json.Marshal(r.Observations[uuid])
			if err != nil {
				return err
			}
			row = append(row, string(b))
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}

// rollout resets t on ep and steps it up to steps times while the episode is
// active.
func rollout(t ports.Task, ep *entities.VLNEpisode, steps int) ([]observationRecord, error) {
	obs, err := t.Reset(ep)
	if err != nil {
		return nil, err
	}
	records := []observationRecord{{EpisodeID: ep.EpisodeID, Observations: obs}}

	for i := 1; i <= steps && t.IsEpisodeActive(); i++ {
		obs, err := t.Step()
		if err != nil {
			return nil, err
		}
		records = append(records, observationRecord{EpisodeID: ep.EpisodeID, Step: i, Observations: obs})
	}
	return records, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
