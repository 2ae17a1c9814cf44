package modlist

import (
	"fmt"
	"os"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/decisions"
	"github.com/arthur-debert/modlist/pkg/filesystem"
	"github.com/arthur-debert/modlist/pkg/paths"
	"github.com/arthur-debert/modlist/pkg/style"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// session is what every command needs: resolved paths, merged config and
// the filesystem to work on
type session struct {
	paths   paths.Paths
	cfg     *config.Config
	fs      types.FS
	workDir string
	format  style.Format
}

// newSession resolves the package root and loads the configuration.
// The --root flag wins over packages.root, which wins over MODLIST_ROOT.
func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	rootFlag, _ := flags.GetString("root")
	configFlag, _ := flags.GetString("config")
	formatFlag, _ := flags.GetString("format")
	promptFlag, _ := flags.GetString("prompt")

	format, err := style.ParseFormat(formatFlag)
	if err != nil {
		return nil, err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	p, err := paths.New(rootFlag)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	userConfig := configFlag
	if userConfig == "" {
		userConfig = p.UserConfigPath()
	}
	overrides := map[string]interface{}{}
	if promptFlag != "" {
		overrides["prompt.mode"] = promptFlag
	}
	cfg, err := config.Load(config.LoadOptions{
		UserConfigPath: paths.ExpandHome(userConfig),
		WorkDir:        workDir,
		Overrides:      overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	if rootFlag == "" && cfg.Packages.Root != "" {
		if p, err = paths.New(cfg.Packages.Root); err != nil {
			return nil, fmt.Errorf(MsgErrInitPaths, err)
		}
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.PackageRoot())
	}

	cfg.Packages.Root = p.PackageRoot()
	if cfg.Decisions.Dir == "" {
		cfg.Decisions.Dir = p.DecisionsDir()
	} else {
		cfg.Decisions.Dir = paths.ExpandHome(cfg.Decisions.Dir)
	}

	log.Debug().
		Str("package_root", cfg.Packages.Root).
		Str("decisions", cfg.Decisions.Dir).
		Str("work_dir", workDir).
		Msg("Session initialized")

	return &session{
		paths:   p,
		cfg:     cfg,
		fs:      filesystem.NewOS(),
		workDir: workDir,
		format:  format.Resolve(os.Stdout),
	}, nil
}

func (s *session) store() *decisions.Store {
	return decisions.NewStore(s.fs, s.cfg.Decisions.Dir)
}
