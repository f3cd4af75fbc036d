// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

//go:build debug

package jdd

import (
	"log/slog"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

var debugLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

func logf(msg string, args ...any) {
	debugLogger.Debug(msg, args...)
}

// logTable dumps the content of the node table, before reporting a failed
// self-check.
func (t *nodetable) logTable() {
	for k := range t.nodes {
		if !t.isvalid(k) {
			continue
		}
		r := t.refs[k]
		debugLogger.Debug("node",
			"id", k,
			"level", t.level(k),
			"low", t.low(k),
			"high", t.high(k),
			"hash", t.ptrhash(k),
			"chain", refChain(r),
			"next", refNext(r),
			"ref", refCount(r),
			"sat", refSaturated(r))
	}
}
