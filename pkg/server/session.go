package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Quiexx/selup-landing-demo/pkg/dom"
	"github.com/Quiexx/selup-landing-demo/pkg/protocol"
	"github.com/Quiexx/selup-landing-demo/pkg/reveal"
)

// Session is one connected client. Three goroutines serve it: the read
// loop decodes frames off the socket, the event loop owns the page
// model and runs handlers, and the write loop serializes outgoing
// frames and heartbeats. Only the event loop touches Behaviors.
type Session struct {
	id       string
	server   *Server
	conn     *websocket.Conn
	logger   *slog.Logger
	strategy reveal.Strategy

	behaviors *Behaviors

	// pending buffers patches produced while handling one event. It is
	// only touched from the event loop (or before the loops start).
	pending []protocol.Patch

	events    chan *protocol.Event
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := newSessionID()
	return &Session{
		id:     id,
		server: s,
		conn:   conn,
		logger: s.logger.With("session", id),
		events: make(chan *protocol.Event, s.config.MaxEventQueue),
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
	}
}

// Apply implements dom.Sink. Every page mutation made by a handler
// lands here and is batched into the next patches frame.
func (sess *Session) Apply(m dom.Mutation) {
	sess.pending = append(sess.pending, patchFromMutation(m))
}

func patchFromMutation(m dom.Mutation) protocol.Patch {
	switch m.Op {
	case dom.OpAddClass:
		return protocol.NewAddClassPatch(m.Target, m.Key)
	case dom.OpRemoveClass:
		return protocol.NewRemoveClassPatch(m.Target, m.Key)
	case dom.OpSetAttr:
		return protocol.NewSetAttrPatch(m.Target, m.Key, m.Value)
	case dom.OpRemoveAttr:
		return protocol.NewRemoveAttrPatch(m.Target, m.Key)
	default:
		panic(fmt.Sprintf("unknown mutation op %d", m.Op))
	}
}

// sendServerHello writes the handshake reply directly; the write loop
// is not running yet.
func (sess *Session) sendServerHello(status protocol.HandshakeStatus) {
	hello := &protocol.ServerHello{
		Status:     status,
		SessionID:  sess.id,
		ServerTime: uint64(time.Now().UnixMilli()),
	}
	frame := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeServerHello(hello))
	sess.conn.SetWriteDeadline(time.Now().Add(sess.server.config.WriteTimeout))
	if err := sess.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		sess.logger.Error("handshake write failed", "error", err)
	}
}

// start builds the session's page behaviors and launches the loops.
// When the client reported no observer support every watched section
// is revealed up front.
func (sess *Session) start(hello *protocol.ClientHello) {
	sess.behaviors = sess.server.factory()
	sess.behaviors.Page.SetSink(sess)
	sess.strategy = reveal.SelectStrategy(hello.HasObserver())

	sess.logger.Info("session started",
		"page", hello.PageID,
		"strategy", sess.strategy)

	if sess.strategy == reveal.StrategyImmediate {
		n := sess.behaviors.Reveal.RevealAll()
		sess.server.metrics.revealTransitions.Add(float64(n))
		sess.flushDirect()
	}

	go sess.readLoop()
	go sess.writeLoop()
	go sess.eventLoop()
}

// Close tears the session down. Safe to call from any goroutine and
// more than once.
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		close(sess.done)
		sess.conn.Close()
		sess.server.unregister(sess)
	})
}

func (sess *Session) readLoop() {
	defer sess.Close()

	cfg := sess.server.config
	sess.conn.SetReadLimit(protocol.MaxPayloadSize + protocol.FrameHeaderSize)
	sess.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	sess.conn.SetPongHandler(func(string) error {
		sess.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
		return nil
	})

	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Error("read failed", "error", err)
			}
			return
		}
		sess.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			sess.sendError(protocol.ErrCodeInvalidFrame, "malformed frame")
			sess.server.metrics.eventErrors.WithLabelValues("frame").Inc()
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			event, err := protocol.DecodeEvent(frame.Payload)
			if err != nil {
				sess.sendError(protocol.ErrCodeInvalidEvent, "malformed event")
				sess.server.metrics.eventErrors.WithLabelValues("event").Inc()
				continue
			}
			select {
			case sess.events <- event:
			default:
				sess.sendError(protocol.ErrCodeRateLimited, "event queue full")
				sess.server.metrics.eventErrors.WithLabelValues("queue").Inc()
			}

		case protocol.FrameControl:
			// Pings from the client are answered in kind.
			op, ts, err := protocol.DecodeControl(frame.Payload)
			if err == nil && op == protocol.ControlPing {
				pong := protocol.NewFrame(protocol.FrameControl,
					protocol.EncodeControl(protocol.ControlPong, ts))
				sess.enqueue(pong.Encode())
			}

		default:
			sess.sendError(protocol.ErrCodeInvalidFrame, "unexpected frame type")
		}
	}
}

func (sess *Session) writeLoop() {
	ticker := time.NewTicker(sess.server.config.HeartbeatInterval)
	defer ticker.Stop()
	defer sess.Close()

	cfg := sess.server.config
	for {
		select {
		case msg := <-sess.send:
			sess.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := sess.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			sess.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-sess.done:
			return
		}
	}
}

func (sess *Session) eventLoop() {
	defer sess.Close()

	for {
		select {
		case event := <-sess.events:
			sess.dispatch(event)
		case <-sess.done:
			return
		}
	}
}

// dispatch runs one event through its handler and flushes the
// resulting patches as a single frame. A panicking handler kills the
// event, never the session.
func (sess *Session) dispatch(event *protocol.Event) {
	defer func() {
		if r := recover(); r != nil {
			sess.logger.Error("handler panic", "event", event.Type, "panic", r)
			sess.pending = sess.pending[:0]
			sess.server.metrics.eventErrors.WithLabelValues("panic").Inc()
		}
	}()

	span := startEventSpan(sess.id, event)
	defer span.End()

	b := sess.behaviors
	switch event.Type {
	case protocol.EventIntersect:
		sess.server.metrics.eventsTotal.WithLabelValues("intersect").Inc()
		entries := make([]reveal.Entry, len(event.Entries))
		for i, e := range event.Entries {
			entries[i] = reveal.Entry{
				Target:       e.Target,
				Ratio:        e.Ratio,
				Intersecting: e.Intersecting,
			}
		}
		n := b.Reveal.HandleEntries(entries)
		sess.server.metrics.revealTransitions.Add(float64(n))

	case protocol.EventInput:
		sess.server.metrics.eventsTotal.WithLabelValues("input").Inc()
		if b.Contact != nil {
			b.Contact.HandleInput(event.Value)
		}

	case protocol.EventSubmit:
		sess.server.metrics.eventsTotal.WithLabelValues("submit").Inc()
		if b.Contact == nil {
			// The client holds the submission until we answer. With no
			// validator attached, release it rather than strand the form.
			sess.pending = append(sess.pending,
				protocol.NewAllowSubmitPatch(event.Target))
			break
		}
		if b.Contact.HandleSubmit(event.Value) {
			sess.pending = append(sess.pending,
				protocol.NewAllowSubmitPatch(b.Contact.FormID()))
		} else {
			sess.server.metrics.validationFailures.Inc()
		}

	default:
		sess.server.metrics.eventErrors.WithLabelValues("type").Inc()
	}

	recordPatchCount(span, len(sess.pending))
	sess.flush(event.Seq)
}

// flush sends the buffered patches as one frame. Events that produce
// no patches produce no frame.
func (sess *Session) flush(seq uint64) {
	if len(sess.pending) == 0 {
		return
	}
	pf := &protocol.PatchesFrame{Seq: seq, Patches: sess.pending}
	frame := protocol.NewFrame(protocol.FramePatches, protocol.EncodePatches(pf))
	sess.enqueue(frame.Encode())
	sess.server.metrics.patchesSent.Add(float64(len(sess.pending)))
	sess.pending = sess.pending[:0]
}

// flushDirect writes pending patches on the caller's goroutine. Used
// during startup, before the write loop exists. The frame carries
// sequence zero since no client event triggered it.
func (sess *Session) flushDirect() {
	if len(sess.pending) == 0 {
		return
	}
	pf := &protocol.PatchesFrame{Seq: 0, Patches: sess.pending}
	frame := protocol.NewFrame(protocol.FramePatches, protocol.EncodePatches(pf))
	sess.conn.SetWriteDeadline(time.Now().Add(sess.server.config.WriteTimeout))
	if err := sess.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		sess.logger.Error("patch write failed", "error", err)
	}
	sess.server.metrics.patchesSent.Add(float64(len(sess.pending)))
	sess.pending = sess.pending[:0]
}

func (sess *Session) sendError(code protocol.ErrorCode, msg string) {
	payload := protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: msg})
	frame := protocol.NewFrame(protocol.FrameError, payload)
	sess.enqueue(frame.Encode())
}

func (sess *Session) enqueue(msg []byte) {
	select {
	case sess.send <- msg:
	case <-sess.done:
	}
}
