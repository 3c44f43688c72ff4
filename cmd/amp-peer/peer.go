package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	amp "github.com/alxayo/go-amp"
	"github.com/alxayo/go-amp/internal/bufpool"
	"github.com/alxayo/go-amp/internal/hooks"
	"github.com/alxayo/go-amp/internal/logger"
	"github.com/alxayo/go-amp/internal/metrics"
)

// peer owns one AMP connection: the wire engine, the underlying socket, and
// the observability wiring (hooks, metrics) layered around engine callbacks.
type peer struct {
	id      string
	conn    net.Conn
	engine  *amp.Engine
	hookMgr *hooks.Manager
	metrics *metrics.Registry
	log     *slog.Logger
}

func newPeer(conn net.Conn, hookMgr *hooks.Manager, reg *metrics.Registry) *peer {
	id := uuid.New().String()
	log := logger.WithPeer(logger.Logger(), id, conn.RemoteAddr().String())

	e := amp.NewEngine()
	p := &peer{id: id, conn: conn, engine: e, hookMgr: hookMgr, metrics: reg, log: log}

	e.SetWriteHandler(func(data []byte) error {
		_, err := conn.Write(data)
		if err == nil && reg != nil {
			reg.BytesWritten.Add(float64(len(data)))
		}
		return err
	})
	e.SetLogger(func(msg string) { log.Debug(msg) })

	e.AddResponder("Sum", p.respondSum)
	e.AddResponder("Echo", p.respondEcho)

	return p
}

// serve reads from the connection until EOF or a fatal protocol error,
// feeding every chunk into the engine.
func (p *peer) serve(ctx context.Context) error {
	defer p.conn.Close()
	buf := bufpool.Get(4096)
	defer bufpool.Put(buf)
	for {
		n, err := p.conn.Read(buf)
		if n > 0 {
			if p.metrics != nil {
				p.metrics.BytesRead.Add(float64(n))
			}
			if cerr := p.engine.Consume(buf[:n]); cerr != nil {
				p.log.Warn("consume error", "error", cerr)
				if kind, ok := amp.KindOf(cerr); ok {
					p.fireErrorHooks(ctx, kind)
					if kind == amp.ProtocolInFatalState || kind == amp.BadKeySize {
						if p.metrics != nil {
							p.metrics.ParseFailures.Inc()
						}
						return cerr
					}
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

func (p *peer) fireErrorHooks(ctx context.Context, kind amp.Kind) {
	if p.hookMgr == nil {
		return
	}
	evt := hooks.NewEvent(hooks.EventFatal).WithPeerID(p.id).WithData("kind", amp.Strerror(kind))
	p.hookMgr.TriggerEvent(ctx, *evt)
}

func (p *peer) respondSum(req *amp.Request) {
	p.fireRequestHook(req)
	a, errA := amp.GetInt64(req.Args, "a")
	b, errB := amp.GetInt64(req.Args, "b")
	if !req.HasAsk() {
		return
	}
	if errA != nil || errB != nil {
		p.respondError(req, amp.ErrorCodeUnknown, "missing or invalid a/b")
		return
	}
	out := amp.NewBox()
	_ = amp.PutInt64(out, "sum", a+b)
	p.respond(req, out)
}

func (p *peer) respondEcho(req *amp.Request) {
	p.fireRequestHook(req)
	if !req.HasAsk() {
		return
	}
	out := amp.NewBox()
	for _, k := range req.Args.Keys() {
		v, _ := req.Args.Get(k)
		_ = out.Put(k, v)
	}
	p.respond(req, out)
}

func (p *peer) respond(req *amp.Request, args *amp.Box) {
	if err := p.engine.Respond(req, args); err != nil {
		p.log.Error("respond failed", "command", req.Command, "error", err)
		return
	}
	if p.hookMgr != nil {
		evt := hooks.NewEvent(hooks.EventResponded).WithPeerID(p.id).WithCommand(req.Command)
		p.hookMgr.TriggerEvent(context.Background(), *evt)
	}
}

func (p *peer) respondError(req *amp.Request, code, description string) {
	if err := p.engine.RespondError(req, code, description); err != nil {
		p.log.Error("respond_error failed", "command", req.Command, "error", err)
		return
	}
	if p.hookMgr != nil {
		evt := hooks.NewEvent(hooks.EventErrorSent).WithPeerID(p.id).WithCommand(req.Command)
		p.hookMgr.TriggerEvent(context.Background(), *evt)
	}
}

func (p *peer) fireRequestHook(req *amp.Request) {
	if p.metrics != nil {
		p.metrics.RequestsTotal.WithLabelValues(req.Command).Inc()
	}
	if p.hookMgr == nil {
		return
	}
	evt := hooks.NewEvent(hooks.EventRequest).WithPeerID(p.id).WithCommand(req.Command)
	if req.HasAsk() {
		evt = evt.WithData("has_ask", true)
	}
	p.hookMgr.TriggerEvent(context.Background(), *evt)
}

// callSum issues a demo Sum call and blocks (up to timeout) for the result,
// used by the dial-mode entry point to exercise Call/Completion end to end.
func (p *peer) callSum(a, b int64, timeout time.Duration) (int64, error) {
	args := amp.NewBox()
	_ = amp.PutInt64(args, "a", a)
	_ = amp.PutInt64(args, "b", b)

	done := make(chan amp.Result, 1)
	askID, err := p.engine.Call("Sum", args, func(r amp.Result) { done <- r })
	if err != nil {
		return 0, err
	}
	if p.metrics != nil {
		p.metrics.CallsInFlight.Inc()
		defer p.metrics.CallsInFlight.Dec()
	}
	start := time.Now()

	select {
	case r := <-done:
		if p.metrics != nil {
			p.metrics.CallLatency.WithLabelValues("Sum").Observe(time.Since(start).Seconds())
		}
		switch r.Kind {
		case amp.ResultSuccess:
			sum, err := amp.GetInt64(r.Response.Args, "sum")
			if p.hookMgr != nil {
				evt := hooks.NewEvent(hooks.EventCallCompleted).WithPeerID(p.id).WithCommand("Sum").WithAskID(askID)
				p.hookMgr.TriggerEvent(context.Background(), *evt)
			}
			return sum, err
		case amp.ResultError:
			return 0, fmt.Errorf("amp-peer: Sum call errored: %s: %s", r.Error.Code, r.Error.Description)
		default:
			return 0, errCancelled
		}
	case <-time.After(timeout):
		_ = p.engine.Cancel(askID)
		return 0, errTimeout
	}
}

var errTimeout = fmt.Errorf("amp-peer: call timed out")
var errCancelled = fmt.Errorf("amp-peer: call cancelled")
