// Copyright (c) 2021 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/hyperledger-labs/wallet-bridge
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

package internal

import (
	"fmt"
	"sync"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/sirupsen/logrus"

	"github.com/hyperledger-labs/wallet-bridge/log"
)

var forwardLibLogsOnce sync.Once

// ForwardLibLogs routes the log records of the go-ethereum library to the
// given logger. Only the first call has an effect.
func ForwardLibLogs(logger log.Logger) {
	forwardLibLogsOnce.Do(func() {
		gethlog.Root().SetHandler(LibLogHandler(logger))
	})
}

// LibLogHandler returns a go-ethereum log handler that writes the records to
// the given logger. Records at crit level are logged as errors, so that the
// library cannot terminate the process via the logger.
func LibLogHandler(logger log.Logger) gethlog.Handler {
	return gethlog.FuncHandler(func(r *gethlog.Record) error {
		entry := logger.WithFields(libLogFields(r.Ctx))
		switch r.Lvl {
		case gethlog.LvlCrit, gethlog.LvlError:
			entry.Error(r.Msg)
		case gethlog.LvlWarn:
			entry.Warn(r.Msg)
		case gethlog.LvlInfo:
			entry.Info(r.Msg)
		default:
			entry.Debug(r.Msg)
		}
		return nil
	})
}

// libLogFields converts the alternating key value context of a record.
// A trailing key without value is dropped.
func libLogFields(ctx []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fields[fmt.Sprint(ctx[i])] = ctx[i+1]
	}
	return fields
}
