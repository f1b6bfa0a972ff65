package riceup

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/riceup/riceup/internal/version"
	"github.com/riceup/riceup/pkg/cmdrun"
	"github.com/riceup/riceup/pkg/commands/genconfig"
	"github.com/riceup/riceup/pkg/commands/showconfig"
	"github.com/riceup/riceup/pkg/commands/up"
	"github.com/riceup/riceup/pkg/config"
	"github.com/riceup/riceup/pkg/docs"
	"github.com/riceup/riceup/pkg/gpu"
	"github.com/riceup/riceup/pkg/logging"
	"github.com/riceup/riceup/pkg/paths"
	"github.com/riceup/riceup/pkg/report"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
		dryRun     bool
		force      bool
		yes        bool
	)

	rootCmd := &cobra.Command{
		Use:     "riceup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, MsgFlagForce)
	rootCmd.PersistentFlags().BoolVar(&yes, "yes", false, MsgFlagYes)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// upOptionsFromFlags collects the persistent flags shared by up and plan.
func upOptionsFromFlags(cmd *cobra.Command) up.Options {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")
	dryRun, _ := flags.GetBool("dry-run")
	force, _ := flags.GetBool("force")
	yes, _ := flags.GetBool("yes")
	gpuOverride, _ := cmd.Flags().GetString("gpu")

	return up.Options{
		ConfigPath:  configPath,
		DryRun:      dryRun,
		Force:       force,
		AssumeYes:   yes,
		GPUOverride: gpuOverride,
	}
}

// runProvision drives an up run and renders its report. Used by both
// the up and plan commands.
func runProvision(cmd *cobra.Command, opts up.Options) error {
	log.Info().
		Bool("dry_run", opts.DryRun).
		Bool("force", opts.Force).
		Msg("Starting provisioning run")

	rep, err := up.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf(MsgErrRun, err)
	}

	fmt.Println(report.Render(rep))
	if opts.DryRun {
		fmt.Println(MsgDryRunNotice)
	}

	if rep.Failed() {
		_, _, failed := rep.Counts()
		return fmt.Errorf(MsgErrStepsFailed, failed)
	}
	return nil
}

func newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd, upOptionsFromFlags(cmd))
		},
	}
	cmd.Flags().String("gpu", "", MsgFlagGPU)
	return cmd
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := upOptionsFromFlags(cmd)
			opts.DryRun = true
			return runProvision(cmd, opts)
		},
	}
	cmd.Flags().String("gpu", "", MsgFlagGPU)
	return cmd
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New("")
			if err != nil {
				return err
			}
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			cfg, err := config.Load(p, configPath)
			if err != nil {
				return err
			}

			vendor := gpu.NewProber(cmdrun.NewSystemRunner()).Probe(cmd.Context())
			if vendor == gpu.VendorNone {
				fmt.Println(MsgNoGPU)
				return nil
			}

			pkgs := cfg.GPU.ForVendor(string(vendor))
			fmt.Printf(MsgGPUDetected, vendor, joinOrNone(pkgs))
			return nil
		},
	}
}

func joinOrNone(pkgs []string) string {
	if len(pkgs) == 0 {
		return "(none configured)"
	}
	out := pkgs[0]
	for _, p := range pkgs[1:] {
		out += " " + p
	}
	return out
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			p, err := paths.New("")
			if err != nil {
				return err
			}

			result, err := genconfig.GenConfig(p, genconfig.Options{Write: write})
			if err != nil {
				return err
			}

			if !write {
				fmt.Print(result.ConfigContent)
				return nil
			}
			if result.FileWritten == "" {
				fmt.Printf(MsgConfigUntouched)
				return nil
			}
			fmt.Printf(MsgConfigWritten, result.FileWritten)
			return nil
		},
	}
	cmd.Flags().Bool("write", false, MsgFlagWrite)
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			out, err := showconfig.ShowConfig(showconfig.Options{ConfigPath: configPath})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics, err := docs.List()
				if err != nil {
					return err
				}
				fmt.Println(MsgDocsAvailable)
				for _, topic := range topics {
					fmt.Printf(MsgDocsItem, topic.Name)
				}
				fmt.Println(MsgDocsHint)
				return nil
			}

			topic, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf(MsgErrUnknownTopic, args[0])
			}
			fmt.Print(docs.NewRenderer().Render(topic.Content))
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
