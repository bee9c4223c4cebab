// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/penny-vault/mvmsim/common"
	"github.com/rs/zerolog/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Logging configuration
	viper.BindEnv("log.level", "MVM_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "MVM_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "MVM_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "MVM_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Write human readable log lines instead of JSON")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Simulation
	viper.BindEnv("sim.seed", "MVM_SEED")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed; 0 seeds from the clock")
	viper.BindPFlag("sim.seed", rootCmd.PersistentFlags().Lookup("seed"))

	viper.BindEnv("sim.start", "MVM_START")
	rootCmd.PersistentFlags().String("start", "2020-01-01", "First date of the historical series (YYYY-MM-DD)")
	viper.BindPFlag("sim.start", rootCmd.PersistentFlags().Lookup("start"))

	viper.BindEnv("sim.end", "MVM_END")
	rootCmd.PersistentFlags().String("end", "", "Last date of the historical series (YYYY-MM-DD); blank is today")
	viper.BindPFlag("sim.end", rootCmd.PersistentFlags().Lookup("end"))

	viper.BindEnv("sim.catalog", "MVM_CATALOG")
	rootCmd.PersistentFlags().String("catalog", "", "TOML file describing the listed entities; blank uses the built-in catalog")
	viper.BindPFlag("sim.catalog", rootCmd.PersistentFlags().Lookup("catalog"))

	viper.BindEnv("sim.sector_mode", "MVM_SECTOR_MODE")
	rootCmd.PersistentFlags().String("sector-mode", "decoupled", "Sector performance mode, one of: `decoupled` or `derived`")
	viper.BindPFlag("sim.sector_mode", rootCmd.PersistentFlags().Lookup("sector-mode"))

	rootCmd.PersistentFlags().Bool("trading-days-only", false, "Only generate history for trading days")
	viper.BindPFlag("sim.trading_days_only", rootCmd.PersistentFlags().Lookup("trading-days-only"))

	viper.BindEnv("market.timezone", "MVM_TIMEZONE")
	rootCmd.PersistentFlags().String("timezone", common.DefaultTimezone, "Timezone of the simulated exchange")
	viper.BindPFlag("market.timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	viper.SetDefault("market.holidays", []string{})

	// Tracing
	viper.BindEnv("otlp.endpoint", "OTLP_ENDPOINT")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "OTLP collector to send traces to; blank disables tracing")
	viper.BindPFlag("otlp.endpoint", rootCmd.PersistentFlags().Lookup("otlp-endpoint"))

	rootCmd.PersistentFlags().Bool("otlp-http", false, "Use HTTP instead of gRPC for the OTLP connection")
	viper.BindPFlag("otlp.http", rootCmd.PersistentFlags().Lookup("otlp-http"))
}

var rootCmd = &cobra.Command{
	Use:     "mvmsim",
	Version: common.CurrentVersion.String(),
	Short:   "mvmsim simulates a small stock exchange",
	Long: `mvmsim generates a reproducible synthetic market: historical prices, a
live session of quotes that moves on every tick, sector aggregates and
macroeconomic indicators. Serve it over HTTP or inspect it from the shell.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		log.Debug().Str("ConfigFile", viper.ConfigFileUsed()).Msg("initialized logging")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
