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

package internal_test

import (
	"testing"
	"time"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge/blockchain/ethereum/internal"
)

func Test_LibLogHandler(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	handler := internal.LibLogHandler(logger)

	tests := []struct {
		name      string
		lvl       gethlog.Lvl
		ctx       []interface{}
		wantLevel logrus.Level
		wantData  logrus.Fields
	}{
		{"crit_as_error", gethlog.LvlCrit, nil, logrus.ErrorLevel, logrus.Fields{}},
		{"error", gethlog.LvlError, []interface{}{"err", "EOF"}, logrus.ErrorLevel, logrus.Fields{"err": "EOF"}},
		{"warn", gethlog.LvlWarn, nil, logrus.WarnLevel, logrus.Fields{}},
		{"info", gethlog.LvlInfo, []interface{}{"url", "http://127.0.0.1:8545"}, logrus.InfoLevel,
			logrus.Fields{"url": "http://127.0.0.1:8545"}},
		{"trace_as_debug", gethlog.LvlTrace, []interface{}{"id", 1, "dangling"}, logrus.DebugLevel,
			logrus.Fields{"id": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			require.NoError(t, handler.Log(&gethlog.Record{
				Time: time.Now(),
				Lvl:  tt.lvl,
				Msg:  "rpc message",
				Ctx:  tt.ctx,
			}))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "rpc message", entry.Message)
			assert.Equal(t, tt.wantData, entry.Data)
		})
	}
}
