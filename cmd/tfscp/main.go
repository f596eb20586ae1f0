// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command tfscp is a thin CLI wrapper over external.CopyFromExternal: it
// ingests one OS-level file into a fresh, process-local TFS instance and
// reports whether the copy succeeded. It adds no design content beyond
// flag parsing (spec.md §1: "any CLI" is out of scope, specified only at
// its interface).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tecnicofs/tfs"
	"github.com/tecnicofs/tfs/external"
)

func main() {
	var blockSize int

	root := &cobra.Command{
		Use:   "tfscp <source-path> <dest-path>",
		Short: "Copy an OS-level file into a TécnicoFS instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := tfs.DefaultParams()
			if v := viper.GetInt("block-size"); v != 0 {
				params.BlockSize = v
			}

			t, err := tfs.New(params)
			if err != nil {
				return fmt.Errorf("tfs.New: %w", err)
			}
			defer t.Close()

			if err := external.CopyFromExternal(t, args[0], args[1]); err != nil {
				return fmt.Errorf("CopyFromExternal: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "copied %s -> %s\n", args[0], args[1])
			return nil
		},
	}

	root.Flags().IntVar(&blockSize, "block-size", 0, "override the default block size")
	viper.BindPFlag("block-size", root.Flags().Lookup("block-size"))
	viper.SetEnvPrefix("TFS")
	viper.BindEnv("block-size")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
