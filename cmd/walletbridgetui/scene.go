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

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/mum4k/termdash/align"
	"github.com/mum4k/termdash/cell"
	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/container/grid"
	"github.com/mum4k/termdash/linestyle"
	"github.com/mum4k/termdash/widgets/button"
	"github.com/mum4k/termdash/widgets/text"
	"github.com/pkg/errors"

	"github.com/hyperledger-labs/wallet-bridge"
	"github.com/hyperledger-labs/wallet-bridge/bridge"
	"github.com/hyperledger-labs/wallet-bridge/reconcile"
)

var (
	// Templates for the labels, as in the scene of the wallet example.
	statusTemplate  = "Status: %s"
	addressTemplate = "Address: %s"
	networkTemplate = "Network: %s"

	// Commonly used alignment options.
	horizontalLeft = []container.Option{container.AlignHorizontal(align.HorizontalLeft)}

	// Colors used in the scene.
	borderColor              = cell.Color(1)
	borderTitleColor         = cell.Color(5)
	labelColor               = cell.Color(7)
	connectedColor           = cell.ColorGreen
	disconnectedColor        = cell.ColorRed
	buttonTextColor          = cell.Color(16)
	buttonPressedFillColor   = cell.Color(16)
	connectButtonColor       = cell.Color(3)
	disconnectButtonColor    = cell.Color(4)
	balanceButtonColor       = cell.Color(6)
	quitButtonColor          = cell.Color(2)
	errNotEnabled            = errors.New("connect the wallet first")
	labelsHeight, labelWidth = 6, 70
	buttonHeight             = 1
)

// sceneScreen holds the widgets of the wallet scene: four labels and the
// buttons that forward the user actions to the bridge.
type sceneScreen struct {
	statusText  *text.Text
	addressText *text.Text
	balanceText *text.Text
	networkText *text.Text

	connectBtn    *button.Button
	disconnectBtn *button.Button
	balanceBtn    *button.Button
	quitBtn       *button.Button

	labels *labelDisplay
}

func newSceneScreen() (*sceneScreen, error) {
	s := &sceneScreen{}
	var err error
	for _, t := range []**text.Text{&s.statusText, &s.addressText, &s.balanceText, &s.networkText} {
		if *t, err = text.New(text.DisableScrolling()); err != nil {
			return nil, errors.Wrap(err, "initializing label")
		}
	}
	if s.connectBtn, err = newButton("Connect", connectButtonColor); err != nil {
		return nil, errors.WithMessage(err, "initializing connect button")
	}
	if s.disconnectBtn, err = newButton("Disconnect", disconnectButtonColor); err != nil {
		return nil, errors.WithMessage(err, "initializing disconnect button")
	}
	if s.balanceBtn, err = newButton("Get Balance", balanceButtonColor); err != nil {
		return nil, errors.WithMessage(err, "initializing get balance button")
	}
	if s.quitBtn, err = newButton("Quit", quitButtonColor); err != nil {
		return nil, errors.WithMessage(err, "initializing quit button")
	}

	s.labels = &labelDisplay{
		state:   walletbridge.DisconnectedState(),
		status:  s.statusText,
		address: s.addressText,
		balance: s.balanceText,
		network: s.networkText,
	}
	// Initial state, before the first action is applied.
	if err = s.labels.render(); err != nil {
		return nil, err
	}
	return s, nil
}

func newButton(text string, color cell.Color) (*button.Button, error) {
	button, err := button.New(text,
		func() error { return nil },
		button.TextHorizontalPadding(1),
		button.TextColor(buttonTextColor),
		button.FillColor(color),
		button.PressedFillColor(buttonPressedFillColor),
		button.DisableShadow(),
		button.Height(buttonHeight))
	return button, errors.WithStack(err)
}

// display returns the display that renders the actions on the labels.
func (s *sceneScreen) display() walletbridge.Display {
	return s.labels
}

// setCallbacks binds the buttons to the bridge. The bridge calls block on the
// wallet, so they are run in the background and errors are sent to the event
// loop.
func (s *sceneScreen) setCallbacks(ctx context.Context, b *bridge.Bridge, quit func()) {
	background := func(fn func(context.Context) walletbridge.APIError) func() error {
		return func() error {
			go func() {
				if apiErr := fn(ctx); apiErr != nil {
					errs <- apiErr
				}
			}()
			return nil
		}
	}
	s.connectBtn.SetCallback(background(b.Connect))
	s.disconnectBtn.SetCallback(s.labels.whenEnabled(background(b.Disconnect)))
	s.balanceBtn.SetCallback(s.labels.whenEnabled(background(b.RefreshBalance)))
	s.quitBtn.SetCallback(func() error {
		quit()
		return nil
	})
}

func renderSceneView(c *container.Container, s *sceneScreen) error {
	builder := grid.New()

	labelRows := []grid.Element{
		grid.RowHeightFixed(1, grid.Widget(s.statusText)),
		grid.RowHeightFixed(1, grid.Widget(s.addressText)),
		grid.RowHeightFixed(1, grid.Widget(s.balanceText)),
		grid.RowHeightFixed(1, grid.Widget(s.networkText)),
	}
	buttonCols := []grid.Element{
		grid.ColWidthPerc(25, grid.Widget(s.connectBtn)),
		grid.ColWidthPerc(25, grid.Widget(s.disconnectBtn)),
		grid.ColWidthPerc(25, grid.Widget(s.balanceBtn)),
		grid.ColWidthPerc(24, grid.Widget(s.quitBtn)),
	}

	builder.Add(
		grid.RowHeightFixedWithOpts(labelsHeight,
			[]container.Option{
				container.BorderTitle("Wallet"),
				container.TitleColor(borderTitleColor), container.TitleFocusedColor(borderTitleColor),
				container.BorderTitleAlignCenter(),
				container.Border(linestyle.Round),
				container.FocusedColor(borderColor),
			}, grid.ColWidthFixedWithOpts(labelWidth, horizontalLeft, labelRows...),
		),
		grid.RowHeightFixedWithOpts(buttonHeight+2,
			[]container.Option{
				container.Border(linestyle.Light),
				container.FocusedColor(borderColor),
			}, buttonCols...,
		),
		grid.RowHeightFixedWithOpts(logsHeight,
			[]container.Option{
				container.BorderTitle("Logs"),
				container.TitleColor(logBoxTitleColor), container.TitleFocusedColor(logBoxTitleColor),
				container.Border(linestyle.Round),
				container.AlignVertical(align.VerticalTop), container.AlignHorizontal(align.HorizontalLeft),
				container.FocusedColor(logBoxBorderColor),
			}, grid.Widget(logBox),
		),
	)
	gridOpts, err := builder.Build()
	if err != nil {
		return errors.Wrap(err, "building scene")
	}
	return errors.Wrap(c.Update(rootContainerID, gridOpts...), "updating scene")
}

// labelDisplay implements walletbridge.Display over the text widgets of the
// scene. Buttons cannot be disabled in termdash, so the controls flag is
// checked by the button callbacks instead.
type labelDisplay struct {
	mtx   sync.Mutex
	state walletbridge.DisplayState

	status, address, balance, network *text.Text
}

// Apply renders the action on the labels.
func (d *labelDisplay) Apply(a walletbridge.Action) error {
	d.mtx.Lock()
	d.state = reconcile.Apply(d.state, a)
	d.mtx.Unlock()
	if a.Kind == walletbridge.ShowStatus && a.Text != "" {
		logInfof("Wallet %s", a.Text)
	}
	return d.render()
}

func (d *labelDisplay) render() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	statusColor := disconnectedColor
	if d.state.Connected {
		statusColor = connectedColor
	}
	writes := []struct {
		widget *text.Text
		text   string
		color  cell.Color
	}{
		{d.status, fmt.Sprintf(statusTemplate, d.state.Status), statusColor},
		{d.address, fmt.Sprintf(addressTemplate, d.state.Address), labelColor},
		{d.balance, d.state.Balance, labelColor},
		{d.network, fmt.Sprintf(networkTemplate, d.state.Network), labelColor},
	}
	for _, w := range writes {
		w.widget.Reset()
		if w.text == "" {
			continue // text widget does not accept empty text.
		}
		if err := w.widget.Write(w.text, text.WriteCellOpts(cell.FgColor(w.color))); err != nil {
			return errors.Wrap(err, "writing label")
		}
	}
	return nil
}

// controlsEnabled reports if the controls that need a connected wallet are
// enabled.
func (d *labelDisplay) controlsEnabled() bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.state.ControlsEnabled
}

// whenEnabled wraps a button callback so that it returns an error while the
// controls are disabled.
func (d *labelDisplay) whenEnabled(fn func() error) func() error {
	return func() error {
		if !d.controlsEnabled() {
			errs <- errNotEnabled
			return nil
		}
		return fn()
	}
}
