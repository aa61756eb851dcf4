package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/attendant/internal/store"
)

func newSweepCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close inactive conversations once and exit",
		Long:  "Runs a single inactivity sweep: every open conversation idle past the threshold is closed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Attendant config file")
	return cmd
}

func runSweep(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	st := store.New(gormDB, cfg.Inactivity())
	closed, err := st.CloseInactive()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Closed %d inactive conversations\n", closed)
	return nil
}
