package cmd

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	vln "github.com/embodied-nav/vln-sdk"
	"github.com/embodied-nav/vln-sdk/application/config"
	"github.com/embodied-nav/vln-sdk/domain/entities"
)

// datasetStats summarises a loaded dataset.
type datasetStats struct {
	Source           string  `json:"source"`
	Episodes         int     `json:"episodes"`
	Scenes           int     `json:"scenes"`
	Trajectories     int     `json:"trajectories"`
	MeanTokens       float64 `json:"mean_tokens"`
	MeanPathLength   float64 `json:"mean_path_length"`
	MeanGeodesicDist float64 `json:"mean_geodesic_distance,omitempty"`
}

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dataset]",
		Short: "Load an episode dataset and report statistics",
		Long: `Load every episode of a dataset through the validating episode builder.
The dataset is taken from the argument, --dataset, VLN_DATASET_PATH or the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.cfg.Dataset.Path = args[0]
			}
			return c.runValidate(cmd)
		},
	}
}

func (c *cli) runValidate(cmd *cobra.Command) error {
	ds, err := vln.LoadDataset(c.registry, c.cfg)
	if err != nil {
		return err
	}
	stats := computeStats(c.cfg.Dataset.Path, ds)

	out := cmd.OutOrStdout()
	if c.isJSONOutput() {
		return writeJSON(out, stats)
	}

	table := tablewriter.NewWriter(out)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Source", stats.Source},
		{"Episodes", strconv.Itoa(stats.Episodes)},
		{"Scenes", strconv.Itoa(stats.Scenes)},
		{"Trajectories", strconv.Itoa(stats.Trajectories)},
		{"Mean tokens", fmt.Sprintf("%.2f", stats.MeanTokens)},
		{"Mean path length", fmt.Sprintf("%.2f", stats.MeanPathLength)},
	}
	if stats.MeanGeodesicDist > 0 {
		rows = append(rows, []string{"Mean geodesic distance", fmt.Sprintf("%.2f", stats.MeanGeodesicDist)})
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func computeStats(source string, ds *entities.Dataset) datasetStats {
	stats := datasetStats{
		Source:   source,
		Episodes: len(ds.Episodes),
		Scenes:   len(ds.SceneIDs()),
	}
	if stats.Episodes == 0 {
		return stats
	}

	var (
		trajectories []int
		tokens       int
		waypoints    int
		geodesic     float64
		withGeodesic int
	)
	for _, ep := range ds.Episodes {
		trajectories = append(trajectories, ep.TrajectoryID)
		tokens += len(ep.Instruction.InstructionTokens)
		waypoints += len(ep.Path)
		if d, ok := config.GetFloat(ep.Info, "geodesic_distance"); ok {
			geodesic += d
			withGeodesic++
		}
	}
	slices.Sort(trajectories)

	n := float64(stats.Episodes)
	stats.Trajectories = len(slices.Compact(trajectories))
	stats.MeanTokens = float64(tokens) / n
	stats.MeanPathLength = float64(waypoints) / n
	if withGeodesic > 0 {
		stats.MeanGeodesicDist = geodesic / float64(withGeodesic)
	}
	return stats
}
