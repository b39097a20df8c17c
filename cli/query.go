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

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surrealdb/surrealdb/cnf"
	"github.com/surrealdb/surrealdb/dbs"
	"github.com/surrealdb/surrealdb/storekv"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a small built-in statement stream against an in-memory store and print one JSON response per statement",
	RunE:  runQuery,
}

// runQuery drives a short, fixed statement stream through the executor.
// There is no SQL parser in this module (SPEC_FULL.md Non-goals — the
// core consumes pre-compiled LogicalPlan values), so this command exists
// to exercise the whole pipeline by hand rather than to take arbitrary
// SurrealQL input.
func runQuery(cmd *cobra.Command, args []string) error {
	opts := &cnf.Options{}

	store := storekv.New()
	planner := dbs.NewDefaultPlanner()
	doc := dbs.NewRecordProcessor()
	exec := dbs.NewExecutor(store, planner, doc)

	ctx := dbs.NewContext(cmd.Context(), opts)

	resp := exec.ExecuteStream(ctx, demoStatements())

	for _, r := range resp {
		enc, err := json.Marshal(responseJSON(r))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
	}

	return nil
}

func responseJSON(r *dbs.Response) map[string]interface{} {
	out := map[string]interface{}{
		"time":       r.Time.String(),
		"status":     r.Status,
		"query_type": r.QueryType,
	}
	if r.Err != nil {
		out["error"] = r.Err.Error()
	}
	return out
}

func demoStatements() []*dbs.Statement {
	return []*dbs.Statement{
		{Kind: dbs.StmtOption, OptionName: "IMPORT", OptionVal: true},
	}
}
