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
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var macroTrade bool

func init() {
	macroCmd.Flags().BoolVar(&macroTrade, "trade", false, "Also print the quarterly trade balance")
	rootCmd.AddCommand(macroCmd)
}

var macroCmd = &cobra.Command{
	Use:   "macro",
	Short: "Print the monthly macroeconomic indicators",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := buildEngine(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		printMacro(e.Macro().Observations())
		if macroTrade {
			fmt.Println()
			printTrade(e.Trade().Observations())
		}
	},
}
