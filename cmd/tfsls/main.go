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

// Command tfsls is a thin CLI wrapper over external.List. Since TFS has
// no persistence and each run builds a fresh instance, it always lists an
// empty directory; it serves as a smoke test and adds no design content
// (spec.md §1).
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tecnicofs/tfs"
	"github.com/tecnicofs/tfs/external"
)

func main() {
	root := &cobra.Command{
		Use:   "tfsls",
		Short: "List the files in a fresh TécnicoFS instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tfs.New(tfs.DefaultParams())
			if err != nil {
				return fmt.Errorf("tfs.New: %w", err)
			}
			defer t.Close()

			names, err := external.List(t)
			if err != nil {
				return fmt.Errorf("List: %w", err)
			}

			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
