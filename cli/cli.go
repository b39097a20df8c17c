// Copyright © 2016 Abcum Ltd
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

// Package cli wires the query execution core to a small command-line
// entrypoint, grounded on teacher's cli package (cobra-based command
// tree in main.go). The rest of teacher's CLI surface (server start,
// certificates, user management) backs the HTTP/auth/storage layers
// that are out of scope for this module (see SPEC_FULL.md §6).
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/surrealdb/surrealdb/log"
)

var rootCmd = &cobra.Command{
	Use:   "surreal",
	Short: "Query execution core command-line interface",
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// Execute runs the CLI, exiting the process on error exactly as
// teacher's cli.Run does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithPrefix("cli").Error(err)
		os.Exit(1)
	}
}
