package main

import (
	"path/filepath"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/config"
)

// archiveFlags are shared by every command that operates on the archive.
func archiveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to archive config file",
		},
		&cli.StringFlag{
			Name:    "archive",
			Aliases: []string{"a"},
			Usage:   "Path to the archive root directory",
		},
	}
}

// loadArchiveConfig resolves the archive config: an explicit --archive
// directory wins, then --config, then an upward walk from the working
// directory. An --archive directory without a config file still works,
// using built-in framework defaults.
func loadArchiveConfig(cmd *cli.Command) (*config.Config, error) {
	if archiveDir := cmd.String("archive"); archiveDir != "" {
		configPath, found, err := config.FindConfigFileIn(archiveDir)
		if err != nil {
			return nil, err
		}

		if found {
			return config.Load(configPath)
		}

		absArchiveDir, err := filepath.Abs(archiveDir)
		if err != nil {
			return nil, oops.Wrapf(err, "resolving archive directory")
		}

		cfg := &config.Config{
			ArchiveRoot: absArchiveDir,
			Frameworks:  config.KnownFrameworks(),
		}
		cfg.ApplyDefaults()

		return cfg, nil
	}

	return config.Load(cmd.String("config"))
}
