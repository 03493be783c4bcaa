package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/locgroup/internal/config"
	"github.com/locgroup/internal/debug"
	"github.com/locgroup/internal/generate"
	"github.com/locgroup/internal/location"
	"github.com/locgroup/internal/pipeline"
	"github.com/locgroup/internal/profile"
	"github.com/locgroup/internal/store"
	"github.com/locgroup/internal/validation"
)

// app carries the resolved configuration and logger shared by subcommands
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.New(a.logger, pipeline.Paths{
		Locations: a.cfg.LocationsPath,
		Groups:    a.cfg.GroupsPath,
		Valid:     a.cfg.ValidPath,
	}, a.cfg.Force)
}

func (a *app) loadProfiles() ([]profile.Profile, error) {
	profiles, err := profile.LoadFile(a.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("profiles loaded", zap.String("path", a.cfg.InputPath), zap.Int("count", len(profiles)))
	return profiles, nil
}

func newRootCmd() *cobra.Command {
	if err := config.LoadEnv(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}
	a := &app{cfg: config.Load(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "locgroup",
		Short:         "Group user profiles by location",
		Long:          `Groups user profiles by normalized location, filters them by validity and writes the results as JSON artifacts`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := debug.New(a.cfg.Debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.cfg.InputPath, "input", "i", a.cfg.InputPath, "profiles JSON file")
	flags.StringVar(&a.cfg.LocationsPath, "locations-out", a.cfg.LocationsPath, "unique locations artifact path")
	flags.StringVar(&a.cfg.GroupsPath, "groups-out", a.cfg.GroupsPath, "location grouping artifact path")
	flags.StringVar(&a.cfg.ValidPath, "valid-out", a.cfg.ValidPath, "validity grouping artifact path")
	flags.BoolVarP(&a.cfg.Force, "force", "f", a.cfg.Force, "overwrite existing artifacts")
	flags.BoolVar(&a.cfg.Debug, "debug", a.cfg.Debug, "enable debug logging")

	rootCmd.AddCommand(createLocationsCmd(a))
	rootCmd.AddCommand(createGroupCmd(a))
	rootCmd.AddCommand(createValidCmd(a))
	rootCmd.AddCommand(createRunCmd(a))
	rootCmd.AddCommand(createLookupCmd(a))
	rootCmd.AddCommand(createGenerateCmd(a))

	return rootCmd
}

func printReport(w io.Writer, name string, r pipeline.Report) {
	switch {
	case !r.Written:
		fmt.Fprintf(w, "- %s: %s exists, skipped (use --force to overwrite)\n", name, r.Path)
	case r.Fallback:
		fmt.Fprintf(w, "✓ %s: no valid location groups, wrote %d input profiles to %s\n", name, r.Records, r.Path)
	default:
		fmt.Fprintf(w, "✓ %s: wrote %d records to %s\n", name, r.Records, r.Path)
	}
}

func createLocationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Write the unique locations artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.loadProfiles()
			if err != nil {
				return err
			}
			_, report, err := a.pipeline().Locations(profiles)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), "locations", report)
			return nil
		},
	}
}

func createGroupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "group",
		Short: "Group all profiles by location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.loadProfiles()
			if err != nil {
				return err
			}
			_, report, err := a.pipeline().Groups(profiles)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), "groups", report)
			return nil
		},
	}
}

func createValidCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valid",
		Short: "Group valid profiles by location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.loadProfiles()
			if err != nil {
				return err
			}
			_, report, err := a.pipeline().Valid(profiles, a.cfg.LookupID)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), "valid", report)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.cfg.LookupID, "uuid", a.cfg.LookupID, "log the profile with this uuid/id/username")
	return cmd
}

func createRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Write every artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.pipeline().LoadAndRun(a.cfg.InputPath, a.cfg.LookupID)
			names := []string{"locations", "groups", "valid"}
			for i, r := range reports {
				printReport(cmd.OutOrStdout(), names[i], r)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&a.cfg.LookupID, "uuid", a.cfg.LookupID, "log the profile with this uuid/id/username")
	return cmd
}

// lookupOutput is what the lookup command prints
type lookupOutput struct {
	Profile  profile.Profile     `json:"profile"`
	Location location.Descriptor `json:"location"`
	Validity validation.Decision `json:"validity"`
}

func createLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [id]",
		Short: "Show one profile with its location and validity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.loadProfiles()
			if err != nil {
				return err
			}
			p, ok := profile.Find(profiles, args[0])
			if !ok {
				return fmt.Errorf("no profile with uuid, id or username %q", args[0])
			}
			data, err := store.Encode(lookupOutput{
				Profile:  p,
				Location: location.Extract(p),
				Validity: validation.Classify(p),
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func createGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic profiles to the input path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := generate.New(a.cfg.GenerateSeed).Users(a.cfg.GenerateCount)
			if err != nil {
				return err
			}
			written, err := store.New(a.logger).Write(users, a.cfg.InputPath, a.cfg.Force)
			if err != nil {
				return err
			}
			if !written {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s exists, skipped (use --force to overwrite)\n", a.cfg.InputPath)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %d profiles to %s\n", len(users), a.cfg.InputPath)
			return nil
		},
	}
	cmd.Flags().IntVarP(&a.cfg.GenerateCount, "count", "n", a.cfg.GenerateCount, "number of random profiles")
	cmd.Flags().Int64Var(&a.cfg.GenerateSeed, "seed", a.cfg.GenerateSeed, "random seed")
	return cmd
}
