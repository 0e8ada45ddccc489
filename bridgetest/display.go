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

package bridgetest

import (
	"sync"

	"github.com/hyperledger-labs/wallet-bridge"
)

// RecordingDisplay is a display that records every applied action.
// It is safe for concurrent use.
type RecordingDisplay struct {
	mtx     sync.Mutex
	actions []walletbridge.Action
}

// Apply records the action.
func (d *RecordingDisplay) Apply(a walletbridge.Action) error {
	d.mtx.Lock()
	d.actions = append(d.actions, a)
	d.mtx.Unlock()
	return nil
}

// Actions returns a copy of the recorded actions.
func (d *RecordingDisplay) Actions() []walletbridge.Action {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	actionsCopy := make([]walletbridge.Action, len(d.actions))
	copy(actionsCopy, d.actions)
	return actionsCopy
}

// Reset clears the recorded actions.
func (d *RecordingDisplay) Reset() {
	d.mtx.Lock()
	d.actions = nil
	d.mtx.Unlock()
}
