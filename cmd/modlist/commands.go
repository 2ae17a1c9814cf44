package modlist

import (
	"fmt"
	"os"
	"time"

	"github.com/arthur-debert/modlist/internal/version"
	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/configurator"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/manifest"
	"github.com/arthur-debert/modlist/pkg/mirror"
	"github.com/arthur-debert/modlist/pkg/patcher"
	"github.com/arthur-debert/modlist/pkg/paths"
	"github.com/arthur-debert/modlist/pkg/pipeline"
	"github.com/arthur-debert/modlist/pkg/prompt"
	"github.com/arthur-debert/modlist/pkg/report"
	"github.com/arthur-debert/modlist/pkg/selfversion"
	"github.com/arthur-debert/modlist/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "modlist",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.Name(), args)
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

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringP("root", "r", "", MsgFlagRoot)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().String("prompt", "", MsgFlagPrompt)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newDecisionsCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// pipelineOptions wires the concrete collaborators of a run
func pipelineOptions(cmd *cobra.Command, s *session) pipeline.Options {
	prompter := prompt.New(s.cfg.Prompt.Mode, cmd.InOrStdin(), cmd.ErrOrStderr())

	return pipeline.Options{
		FileSystem: s.fs,
		Config:     s.cfg,
		Provider:   decisions.NewProvider(s.store(), prompter),
		WorkDir:    s.workDir,
		Now:        time.Now,
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			opts := pipelineOptions(cmd, s)

			runner := &configurator.Runner{
				Binary: s.cfg.Configurator.Binary,
				Args:   s.cfg.Configurator.Args,
				Allow:  s.cfg.Configurator.Allow,
				Dir:    s.workDir,
			}
			opts.Configurator = runner
			if style.IsTerminal(os.Stderr) {
				opts.Configurator = runner.WithProgress(os.Stderr)
			}

			if s.cfg.Mirror.Enabled {
				opts.Mirror = mirror.ExecRunner{}
				opts.Tracker = selfversion.NewTracker(s.fs, s.paths.VersionStatePath())
				if exe, err := os.Executable(); err == nil {
					opts.Executable = exe
				} else {
					log.Warn().Err(err).Msg("Cannot locate own executable, mirroring on every run")
				}
			}

			log.Info().
				Str("package_root", s.cfg.Packages.Root).
				Str("manifest", s.cfg.Manifest.Path).
				Msg("Starting run")

			summary := pipeline.New(opts).Run()
			printSummary(cmd.OutOrStdout(), s.format, summary)

			if !summary.Success {
				failed := failedStage(summary)
				return fmt.Errorf(MsgErrRunFailed, failed.Stage, failed.Err)
			}
			return nil
		},
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			withReport, _ := cmd.Flags().GetBool("report")

			summary := pipeline.New(pipelineOptions(cmd, s)).Preview()
			if !summary.Success {
				printSummary(cmd.ErrOrStderr(), s.format, summary)
				failed := failedStage(summary)
				return fmt.Errorf(MsgErrResolve, failed.Err)
			}

			out := cmd.OutOrStdout()
			if withReport {
				markdown := report.Markdown(summary.Resolution, summary.Document)
				fmt.Fprint(out, report.Render(markdown, s.format != style.FormatTerminal, terminalWidth()))
				return nil
			}

			if summary.Document == nil {
				fmt.Fprintln(out, MsgNothingToWrite)
				return nil
			}
			rendered, err := manifest.Render(summary.Document)
			if err != nil {
				return fmt.Errorf(MsgErrRender, err)
			}
			fmt.Fprint(out, string(rendered))
			return nil
		},
	}

	cmd.Flags().Bool("report", false, MsgFlagReport)

	return cmd
}

func newDecisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decisions",
		Short:   MsgDecisionsShort,
		Long:    MsgDecisionsLong,
		Example: MsgDecisionsExample,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgDecisionsListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			records, err := s.store().List()
			if err != nil {
				return fmt.Errorf(MsgErrDecisions, err)
			}
			printDecisions(cmd.OutOrStdout(), s.format, records)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:               "clear [key...]",
		Short:             MsgDecisionsClearShort,
		ValidArgsFunction: decisionKeysCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			store := s.store()

			keys := args
			if len(keys) == 0 {
				records, err := store.List()
				if err != nil {
					return fmt.Errorf(MsgErrDecisions, err)
				}
				for _, r := range records {
					keys = append(keys, r.Key)
				}
			}

			for _, key := range keys {
				if err := store.Delete(key); err != nil {
					return fmt.Errorf(MsgErrClear, key, err)
				}
				log.Info().Str("key", key).Msg("Forgot stored answer")
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgDecisionsCleared, len(keys))
			return nil
		},
	})

	return cmd
}

// decisionKeysCompletion completes stored decision keys
func decisionKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	records, err := s.store().List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	given := make(map[string]bool, len(args))
	for _, arg := range args {
		given[arg] = true
	}
	var keys []string
	for _, r := range records {
		if !given[r.Key] {
			keys = append(keys, r.Key)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "patch [file]",
		Short:   MsgPatchShort,
		Long:    MsgPatchLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			target := s.cfg.PatchFile()
			if len(args) == 1 {
				target = args[0]
			}
			if target == "" {
				return fmt.Errorf(MsgErrNoPatchFile)
			}
			target = paths.ExpandHome(target)

			outcome, err := patcher.File(s.fs, target, s.cfg.Patch.Move, s.cfg.Patch.Anchor)
			if err != nil {
				return fmt.Errorf(MsgErrPatch, target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgPatchOutcome, style.Render(s.format, "Path", target), outcome)
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			content := config.GenerateConfigContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			target, _ := cmd.Root().PersistentFlags().GetString("config")
			if target == "" {
				p, err := paths.New("")
				if err != nil {
					return fmt.Errorf(MsgErrInitPaths, err)
				}
				target = p.UserConfigPath()
			}
			target = paths.ExpandHome(target)

			fsys := filesystem.NewOS()
			if _, err := fsys.Stat(target); err == nil {
				return fmt.Errorf(MsgErrConfigExists, target)
			}
			if err := filesystem.WriteAtomic(fsys, target, []byte(content), 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
