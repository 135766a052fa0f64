// Package cli exposes the ApplicationService as gridctl commands.
package cli

import (
	"encoding/json"
	"fmt"

	"grid-supply/internal/app"
	"grid-supply/internal/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "gridctl" command and registers all
// subcommands against svc.
func NewRootCmd(svc app.ApplicationService) *cobra.Command {
	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Grid supply planning: stock, shortfalls, projects and demand forecasts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStatsCmd(svc),
		newMaterialsCmd(svc),
		newShortfallsCmd(svc),
		newProjectsCmd(svc),
		newFulfillmentCmd(svc),
		newAccuracyCmd(svc),
		newForecastCmd(svc),
	)
	return root
}

func newStatsCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := svc.GetDashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func newMaterialsCmd(svc app.ApplicationService) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List materials with stock position and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ListMaterials(cmd.Context())
			if err != nil {
				return err
			}
			materials := result.Materials
			if status != "" {
				filtered := materials[:0]
				for _, m := range materials {
					if string(m.Status) == status {
						filtered = append(filtered, m)
					}
				}
				materials = filtered
			}
			printMaterials(cmd.OutOrStdout(), materials)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only show materials in this status (Critical, Low, Good)")
	return cmd
}

func newShortfallsCmd(svc app.ApplicationService) *cobra.Command {
	var materialID string
	cmd := &cobra.Command{
		Use:   "shortfalls",
		Short: "List materials whose stock cannot cover safety stock plus open forecasts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if materialID != "" {
				result, err := svc.GetMaterialShortfall(cmd.Context(), materialID)
				if err != nil {
					return err
				}
				printMaterialShortfall(cmd.OutOrStdout(), result.Shortfall)
				return nil
			}
			result, err := svc.ListShortfalls(cmd.Context())
			if err != nil {
				return err
			}
			printShortfalls(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&materialID, "material", "", "Show the position of one material, even when covered")
	return cmd
}

func newProjectsCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects with completion and fulfillment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), result.Projects)
			return nil
		},
	}
}

func newFulfillmentCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "fulfillment <project-id>",
		Short: "Show the allocated share of a project's material requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.GetProjectFulfillment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s fulfillment: %s%%\n", result.ProjectID, result.Fulfillment.StringFixed(1))
			return nil
		},
	}
}

func newAccuracyCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "accuracy",
		Short: "Show mean forecast accuracy over realized entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.GetForecastAccuracy(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forecast accuracy: %s%% (%d of %d entries realized)\n",
				result.Accuracy.StringFixed(1), result.Realized, result.Total)
			return nil
		},
	}
}

func newForecastCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Generate material demand forecasts",
	}
	cmd.AddCommand(newForecastGenerateCmd(svc), newForecastSchemaCmd(svc))
	return cmd
}

func newForecastGenerateCmd(svc app.ApplicationService) *cobra.Command {
	var (
		req                          core.ForecastRequest
		projectType                  string
		budget, lineLength, distance float64
		asJSON                       bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Forecast and price the materials of a project and record the forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ProjectType = core.ProjectType(projectType)
			if cmd.Flags().Changed("budget") {
				v := decimal.NewFromFloat(budget)
				req.Budget = &v
			}
			if cmd.Flags().Changed("line-length") {
				v := decimal.NewFromFloat(lineLength)
				req.LineLength = &v
			}
			if cmd.Flags().Changed("distance") {
				v := decimal.NewFromFloat(distance)
				req.DistanceFromStorage = &v
			}

			result, err := svc.GenerateForecast(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printForecast(cmd.OutOrStdout(), result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ProjectName, "name", "", "Project name")
	f.StringVar(&req.ProjectID, "project", "", "Existing project ID")
	f.StringVar(&projectType, "type", string(core.ProjectTypeTower), "Project type: Tower, Substation or Both")
	f.StringVar(&req.Region, "region", "", "Region")
	f.StringVar(&req.Location, "location", "", "State or location")
	f.StringVar(&req.ProjectCategory, "category", "", "Project category")
	f.StringVar(&req.TowerType, "tower-type", "", "Tower type")
	f.StringVar(&req.SubstationType, "substation-type", "", "Substation type")
	f.StringVar(&req.Terrain, "terrain", "", "Terrain")
	f.Float64Var(&budget, "budget", 0, "Budget in crores")
	f.Float64Var(&lineLength, "line-length", 0, "Transmission line length in km")
	f.Float64Var(&distance, "distance", 0, "Distance from storage in km")
	f.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newForecastSchemaCmd(svc app.ApplicationService) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a forecast request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(svc.ForecastRequestSchema())
		},
	}
}
