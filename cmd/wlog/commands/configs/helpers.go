package configs

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/wlog/cmd/wlog/commands/flags"
	"github.com/thoreinstein/wlog/internal/aggregate"
	"github.com/thoreinstein/wlog/internal/errors"
	"github.com/thoreinstein/wlog/internal/factory"
	"github.com/thoreinstein/wlog/internal/logging"
)

// sourceDirs returns the directories to aggregate, in merge order.
func sourceDirs() ([]string, error) {
	s, err := flags.GetSettings()
	if err != nil {
		return nil, err
	}
	dirs := []string{s.ConfigsDir()}
	if s.ConfigDir != "" {
		dirs = append(dirs, s.ConfigDir)
	}
	return dirs, nil
}

// loadAggregate scans every source directory in order. With withSources it
// also reports the file each key was last read from.
func loadAggregate(cmd *cobra.Command, withSources bool) (aggregate.Aggregate, map[string]string, error) {
	dirs, err := sourceDirs()
	if err != nil {
		return nil, nil, err
	}

	a := aggregate.NewAggregator(aggregate.WithLogger(logging.FromContext(cmd.Context())))

	var (
		agg     aggregate.Aggregate
		sources map[string]string
	)
	if withSources {
		sources = make(map[string]string)
	}
	for _, dir := range dirs {
		if agg, err = a.ScanAndMerge(dir, agg); err != nil {
			return nil, nil, err
		}
		if withSources {
			src, err := a.Sources(dir)
			if err != nil {
				return nil, nil, err
			}
			for k, v := range src {
				sources[k] = v
			}
		}
	}
	return agg, sources, nil
}

func newManager(cmd *cobra.Command) (*factory.Manager, error) {
	s, err := flags.GetSettings()
	if err != nil {
		return nil, err
	}
	return factory.NewManager(s.FactoryResetsDir(), s.ConfigsDir(),
		factory.WithLogger(logging.FromContext(cmd.Context())),
	), nil
}

func parseFormat(s string) (aggregate.Format, error) {
	f, err := aggregate.ParseFormat(s)
	if err != nil {
		return "", errors.NewUserError(err, "Use -o yaml, -o json or -o toml")
	}
	return f, nil
}
