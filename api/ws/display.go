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

// Package ws provides a display that pushes the display actions to the
// clients connected over websocket, so that the state of the bridge can be
// rendered by a remote user interface.
package ws

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/log"
	"github.com/hyperledger-labs/wallet-bridge/reconcile"
)

// Message types sent to the subscribers.
const (
	MsgTypeState  = "state"
	MsgTypeAction = "action"
)

// Message is the payload of each websocket message sent to the subscribers.
// The first message on every connection is of type state and carries the
// complete display state, all subsequent messages carry a single action.
type Message struct {
	Type   string                     `json:"type"`
	State  *walletbridge.DisplayState `json:"state,omitempty"`
	Action *walletbridge.Action       `json:"action,omitempty"`
}

type wsConfigType struct {
	writeWait      time.Duration
	pongWait       time.Duration
	pingPeriod     time.Duration
	maxMessageSize int64
	sendQueueSize  int
}

var wsConfig = wsConfigType{
	writeWait:      10 * time.Second,
	pongWait:       60 * time.Second,
	pingPeriod:     ((60 * time.Second) * 9) / 10, // ping period = (pongWait * 9)/10
	maxMessageSize: 512,
	sendQueueSize:  64,
}

// Display implements walletbridge.Display by broadcasting the actions to all
// websocket subscribers.
//
// The methods defined over it are safe for concurrent access.
type Display struct {
	log.Logger

	mtx   sync.Mutex
	state walletbridge.DisplayState
	subs  map[string]*subscriber

	srv      *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
}

type subscriber struct {
	log.Logger

	id   string
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

// NewDisplay returns a websocket display that has no subscribers.
func NewDisplay() *Display {
	return &Display{
		Logger: log.NewLoggerWithField("display", "ws"),
		state:  walletbridge.DisconnectedState(),
		subs:   make(map[string]*subscriber),
	}
}

// Apply updates the display state and sends the action to all subscribers.
//
// Subscribers that cannot keep up are disconnected; they receive the
// complete state when they connect again.
func (d *Display) Apply(a walletbridge.Action) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.state = reconcile.Apply(d.state, a)
	for _, sub := range d.subs {
		action := a
		select {
		case sub.send <- Message{Type: MsgTypeAction, Action: &action}:
		default:
			sub.Error("Send queue full, dropping subscriber")
			d.removeSub(sub)
		}
	}
	return nil
}

// State returns a copy of the display state.
func (d *Display) State() walletbridge.DisplayState {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.state
}

// SubscriberCount returns the number of connected subscribers.
func (d *Display) SubscriberCount() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return len(d.subs)
}

// ListenAndServe starts listening on the given address and serves the
// websocket endpoint in the background. It returns once the listener is
// started, so that errors in starting the listener can be caught.
func (d *Display) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "starting websocket listener")
	}
	mux := http.NewServeMux()
	mux.Handle("/", d)

	d.mtx.Lock()
	d.listener = ln
	d.srv = &http.Server{Handler: mux}
	srv := d.srv
	d.mtx.Unlock()

	go func() {
		// ErrServerClosed is returned when the server is closed intentionally.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.WithField("addr", ln.Addr().String()).Error("Websocket listener shutdown with error: ", err)
		}
	}()
	d.WithField("addr", ln.Addr().String()).Info("Serving websocket display")
	return nil
}

// Addr returns the address of the listener. It is nil if the display is not
// serving.
func (d *Display) Addr() net.Addr {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.listener == nil {
		return nil
	}
	return d.listener.Addr()
}

// ServeHTTP upgrades the request to a websocket connection and registers it
// as a subscriber.
func (d *Display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Errors from upgrade are due to issues in the incoming request.
		d.Error("Error in incoming request format: ", err)
		return
	}
	id := uuid.New().String()
	sub := &subscriber{
		Logger: log.NewDerivedLoggerWithField(d.Logger, "subscriber", id),
		id:     id,
		conn:   conn,
		send:   make(chan Message, wsConfig.sendQueueSize),
	}

	d.mtx.Lock()
	state := d.state
	sub.send <- Message{Type: MsgTypeState, State: &state}
	d.subs[sub.id] = sub
	d.mtx.Unlock()

	sub.Info("Subscriber connected")
	go d.writeHandler(sub)
	go d.readHandler(sub)
}

// writeHandler sends the queued messages and pings to the subscriber until
// the send queue is closed or a write fails.
func (d *Display) writeHandler(sub *subscriber) {
	ticker := time.NewTicker(wsConfig.pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close() // nolint: errcheck,gosec
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			if err := sub.conn.SetWriteDeadline(time.Now().Add(wsConfig.writeWait)); err != nil {
				d.unsubscribe(sub)
				return
			}
			if !ok {
				// nolint: errcheck,gosec	// Connection is closed after this anyways.
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteJSON(msg); err != nil {
				sub.Error("Error sending message: ", err)
				d.unsubscribe(sub)
				return
			}
		case <-ticker.C:
			if err := sub.conn.SetWriteDeadline(time.Now().Add(wsConfig.writeWait)); err != nil {
				d.unsubscribe(sub)
				return
			}
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				d.unsubscribe(sub)
				return
			}
		}
	}
}

// readHandler discards the incoming messages and unsubscribes when the
// connection is closed by the subscriber.
func (d *Display) readHandler(sub *subscriber) {
	defer d.unsubscribe(sub)

	sub.conn.SetReadLimit(wsConfig.maxMessageSize)
	if err := sub.conn.SetReadDeadline(time.Now().Add(wsConfig.pongWait)); err != nil {
		return
	}
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(wsConfig.pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (d *Display) unsubscribe(sub *subscriber) {
	d.mtx.Lock()
	d.removeSub(sub)
	d.mtx.Unlock()
}

// removeSub should be called with the mutex held.
func (d *Display) removeSub(sub *subscriber) {
	if _, ok := d.subs[sub.id]; !ok {
		return
	}
	delete(d.subs, sub.id)
	sub.once.Do(func() { close(sub.send) })
	sub.Info("Subscriber disconnected")
}

// Close disconnects all subscribers and stops the listener.
func (d *Display) Close() error {
	d.mtx.Lock()
	for _, sub := range d.subs {
		d.removeSub(sub)
	}
	srv := d.srv
	d.srv = nil
	d.listener = nil
	d.mtx.Unlock()

	if srv == nil {
		return nil
	}
	return errors.WithStack(srv.Close())
}
