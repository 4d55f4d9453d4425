// Copyright (C) 2008-2018 by Nicolas Piganeau and the TS2 TEAM
// (See AUTHORS file)
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program; if not, write to the
// Free Software Foundation, Inc.,
// 59 Temple Place - Suite 330, Boston, MA  02111-1307, USA.

// Package liveview serves a read-only websocket/HTTP view of the running
// simulation: the tick snapshot, an audit trail of recent tick events,
// and rolling KPIs. It never drives the simulation; the engine's caller
// pushes to it via Server.Publish.
package liveview

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"gopkg.in/inconshreveable/log15.v2"
)

var logger = log15.New("module", "liveview")

// InitializeLogger re-parents the package logger, matching the rest of this
// module's per-package logging convention.
func InitializeLogger(parentLogger log15.Logger) {
	logger = parentLogger.New("module", "liveview")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// subscriberCapacity bounds how far a slow websocket client can lag before
// Broadcast starts skipping messages for it rather than blocking the
// broadcaster.
const subscriberCapacity = 32

// Hub fans every Broadcast out to all currently-connected websocket clients.
// A message that does not fit in a slow or stalled client's buffer is
// dropped for that client rather than allowed to back-pressure the
// simulation; the client itself stays subscribed.
type Hub struct {
	mu       sync.RWMutex
	clients  map[chan []byte]bool
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]bool)}
}

// Broadcast sends msg to every connected client, non-blocking.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			logger.Warn("dropping message for slow liveview client")
		}
	}
}

func (h *Hub) subscribe() chan []byte {
	ch := make(chan []byte, subscriberCapacity)
	h.mu.Lock()
	h.clients[ch] = true
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

// ServeWS upgrades the request to a websocket and streams Broadcast messages
// to it until a write fails or the request context is done.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	logger.Debug("liveview client connected", "remote", r.RemoteAddr)
	// channerics.OrDone lets the request context cancel the client's read
	// loop directly, instead of only relying on the subscriber channel
	// closing from the Hub side.
	for msg := range channerics.OrDone(r.Context().Done(), ch) {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debug("liveview client disconnected", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}
