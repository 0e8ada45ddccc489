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

package bridge

import (
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/log"
)

// MultiDisplay applies each action to all of its displays, in order.
type MultiDisplay []walletbridge.Display

// Apply applies the action to all displays, even if some of them fail. The
// first error is returned.
func (m MultiDisplay) Apply(a walletbridge.Action) error {
	var firstErr error
	for i := range m {
		if err := m[i].Apply(a); err != nil && firstErr == nil {
			firstErr = errors.WithMessagef(err, "display %d", i)
		}
	}
	return firstErr
}

// LogDisplay is a display that writes each action to the log. It is used
// when the bridge runs without a user interface.
type LogDisplay struct {
	log.Logger
}

// Apply logs the action.
func (d LogDisplay) Apply(a walletbridge.Action) error {
	entry := d.WithField("action", a.Kind.String())
	switch a.Kind {
	case walletbridge.SetControlsEnabled:
		entry.WithField("enabled", a.Enabled).Info("Display updated")
	case walletbridge.RequestBalanceRefresh:
		entry.Info("Display updated")
	default:
		entry.WithField("text", a.Text).Info("Display updated")
	}
	return nil
}
