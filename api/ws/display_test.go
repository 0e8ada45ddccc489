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

package ws_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/api/ws"
)

const testAddr = "0x8450c0055cB180C7C37A25866132A740b812937B"

func newServingDisplay(t *testing.T) (*ws.Display, string) {
	t.Helper()
	port, err := freeport.GetFreePort()
	require.NoError(t, err)
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	d := ws.NewDisplay()
	require.NoError(t, d.ListenAndServe(addr))
	t.Cleanup(func() {
		assert.NoError(t, d.Close())
	})
	return d, addr
}

func dial(t *testing.T, d *ws.Display, addr string, wantSubs int) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/", nil)
	require.NoError(t, err)
	resp.Body.Close() // nolint: errcheck,gosec
	t.Cleanup(func() {
		conn.Close() // nolint: errcheck,gosec
	})
	require.Eventually(t, func() bool { return d.SubscriberCount() == wantSubs }, time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func Test_Display_Apply(t *testing.T) {
	t.Run("happy_no_subscribers", func(t *testing.T) {
		d := ws.NewDisplay()
		require.NoError(t, d.Apply(walletbridge.NewShowStatus(walletbridge.StatusConnected)))
		require.NoError(t, d.Apply(walletbridge.NewShowAddress(testAddr)))

		assert.Equal(t, walletbridge.DisplayState{
			Connected: true,
			Status:    walletbridge.StatusConnected,
			Address:   testAddr,
		}, d.State())
		assert.Nil(t, d.Addr())
	})

	t.Run("happy_subscriber_receives_state_and_actions", func(t *testing.T) {
		d, addr := newServingDisplay(t)
		conn := dial(t, d, addr, 1)

		msg := readMessage(t, conn)
		assert.Equal(t, ws.MsgTypeState, msg.Type)
		require.NotNil(t, msg.State)
		assert.Equal(t, walletbridge.DisconnectedState(), *msg.State)
		assert.Equal(t, walletbridge.StatusDisconnected, msg.State.Status)

		actions := []walletbridge.Action{
			walletbridge.NewShowStatus(walletbridge.StatusConnected),
			walletbridge.NewShowBalance("Balance: 1 ETH"),
			walletbridge.NewSetControlsEnabled(true),
		}
		for _, a := range actions {
			require.NoError(t, d.Apply(a))
		}
		for _, want := range actions {
			msg = readMessage(t, conn)
			assert.Equal(t, ws.MsgTypeAction, msg.Type)
			require.NotNil(t, msg.Action)
			assert.Equal(t, want, *msg.Action)
		}
	})

	t.Run("happy_late_subscriber_receives_current_state", func(t *testing.T) {
		d, addr := newServingDisplay(t)
		require.NoError(t, d.Apply(walletbridge.NewShowStatus(walletbridge.StatusConnected)))
		require.NoError(t, d.Apply(walletbridge.NewShowNetwork("Sepolia")))

		conn := dial(t, d, addr, 1)
		msg := readMessage(t, conn)
		assert.Equal(t, ws.MsgTypeState, msg.Type)
		require.NotNil(t, msg.State)
		assert.Equal(t, d.State(), *msg.State)
		assert.Equal(t, "Sepolia", msg.State.Network)
	})

	t.Run("happy_multiple_subscribers", func(t *testing.T) {
		d, addr := newServingDisplay(t)
		conn1 := dial(t, d, addr, 1)
		conn2 := dial(t, d, addr, 2)
		readMessage(t, conn1)
		readMessage(t, conn2)

		require.NoError(t, d.Apply(walletbridge.NewShowAddress(testAddr)))
		for _, conn := range []*websocket.Conn{conn1, conn2} {
			msg := readMessage(t, conn)
			require.NotNil(t, msg.Action)
			assert.Equal(t, walletbridge.NewShowAddress(testAddr), *msg.Action)
		}
	})
}

func Test_Display_Unsubscribe(t *testing.T) {
	d, addr := newServingDisplay(t)
	conn := dial(t, d, addr, 1)
	readMessage(t, conn)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return d.SubscriberCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, d.Apply(walletbridge.NewShowStatus(walletbridge.StatusDisconnected)))
}

func Test_Display_Close(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	d := ws.NewDisplay()
	require.NoError(t, d.ListenAndServe(addr))
	conn := dial(t, d, addr, 1)
	readMessage(t, conn)

	require.NoError(t, d.Close())
	assert.Zero(t, d.SubscriberCount())
	assert.Nil(t, d.Addr())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)

	_, _, err = websocket.DefaultDialer.Dial("ws://"+addr+"/", nil) // nolint: bodyclose
	assert.Error(t, err)
}

func Test_Display_ListenAndServe_InvalidAddr(t *testing.T) {
	d := ws.NewDisplay()
	assert.Error(t, d.ListenAndServe("invalid-addr"))
}
