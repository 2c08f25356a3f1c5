package commands

import "github.com/thoreinstein/wlog/cmd/wlog/commands/configs"

func init() {
	rootCmd.AddCommand(configs.Cmd)
}
