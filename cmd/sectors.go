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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var sectorsTicks int

func init() {
	sectorsCmd.Flags().IntVar(&sectorsTicks, "ticks", 0, "Number of ticks to run before aggregating")
	rootCmd.AddCommand(sectorsCmd)
}

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Print the sector summaries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		e, err := buildEngine(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		runTicks(ctx, e, sectorsTicks)
		printSectors(e.Sectors())
	},
}
