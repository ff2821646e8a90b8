package http

import (
	"net/http"
	"time"

	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// pingInterval is how often the server pings a tracking client.
	pingInterval = 30 * time.Second

	// pongWait is how long the server waits for a pong before it
	// considers the connection dead.
	pongWait = 60 * time.Second

	// writeWait bounds a single write to the client.
	writeWait = 10 * time.Second

	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		// TODO: restrict origins once the web client's domain is fixed.
		return true
	},
}

// TrackOrder handles GET /api/v1/orders/:id/track - a websocket stream of
// committed order snapshots. The current state is sent first, then every
// lifecycle transition, accepted position report and ETA update follows
// as its own event, in commit order.
func (s *Server) TrackOrder(c echo.Context) error {
	actor, orderID, ok := s.requestScope(c)
	if !ok {
		return nil
	}

	// The read also enforces that the actor may follow this order.
	query, err := queries.NewGetOrderPositionQuery(orderID, actor)
	if err != nil {
		return writeError(c, err)
	}
	current, err := s.getOrderPositionHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	sub, err := s.notifications.Subscribe(orderID)
	if err != nil {
		return writeError(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.notifications.Unsubscribe(sub)
		return err
	}

	first := TrackEvent{
		OrderID:    current.OrderID.String(),
		Status:     current.Status.String(),
		Eta:        current.Eta,
		ObservedAt: current.ObservedAt,
	}
	if current.Location != nil && current.ObservedAt != nil {
		first.Position = &PositionResponse{
			Lat:        current.Location.Lat(),
			Lng:        current.Location.Lng(),
			ObservedAt: *current.ObservedAt,
		}
	}

	go s.streamSnapshots(conn, sub, first)
	return nil
}

// streamSnapshots pumps snapshots from the subscription to the websocket
// until either side goes away.
func (s *Server) streamSnapshots(conn *websocket.Conn, sub *ports.Subscription, first TrackEvent) {
	defer func() {
		s.notifications.Unsubscribe(sub)
		_ = conn.Close()
	}()

	// Reader goroutine: clients never send data, but reading is what
	// surfaces close frames and keeps the pong handler running.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writeEvent := func(event TrackEvent) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(event)
	}

	if err := writeEvent(first); err != nil {
		return
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case snapshot, open := <-sub.C:
			if !open {
				return
			}
			if err := writeEvent(toTrackEvent(snapshot)); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
