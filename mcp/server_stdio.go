package mcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/shaharia-lab/toolserver/observability"
)

// LifecycleState represents the server loop's current state
type LifecycleState int32

const (
	StateStarting LifecycleState = iota
	StateServing
	StateDraining
	StateStopped
)

func (s LifecycleState) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateServing:
		return "serving"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("LifecycleState(%d)", int32(s))
	}
}

// StdIOServer is the MCP server implementation using standard input/output.
type StdIOServer struct {
	*BaseServer
	in    io.Reader
	out   io.Writer
	state atomic.Int32
}

// NewStdIOServer creates a new StdIOServer. out receives protocol lines only.
func NewStdIOServer(baseServer *BaseServer, in io.Reader, out io.Writer) *StdIOServer {
	return &StdIOServer{
		BaseServer: baseServer,
		in:         in,
		out:        out,
	}
}

// State reports where the loop is in its lifecycle.
func (s *StdIOServer) State() LifecycleState {
	return LifecycleState(s.state.Load())
}

// Run serves requests until the input ends or ctx is cancelled. End of input
// returns nil and cancellation returns ctx.Err(). The request being handled when
// ctx is cancelled runs to completion; no further line is dispatched.
func (s *StdIOServer) Run(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateStarting), int32(StateServing)) {
		return ErrServerStopped
	}
	defer s.state.Store(int32(StateStopped))

	log := s.logger.WithFields(map[string]interface{}{
		"session": uuid.NewString(),
	})
	log.Info("Ready to receive requests")

	lines := make(chan []byte)
	done := make(chan error, 1)
	go s.readLines(ctx, lines, done)

	for {
		select {
		case <-ctx.Done():
			s.state.Store(int32(StateDraining))
			log.Info("Context cancelled, StdIOServer shutting down")
			return ctx.Err()

		case err := <-done:
			s.state.Store(int32(StateDraining))
			if err != nil {
				log.WithErr(err).Error("Failed to read input, StdIOServer shutting down")
				return fmt.Errorf("read input: %w", err)
			}
			log.Info("Input closed, StdIOServer shutting down")
			return nil

		case line := <-lines:
			if ctx.Err() != nil {
				s.state.Store(int32(StateDraining))
				log.Info("Context cancelled, StdIOServer shutting down")
				return ctx.Err()
			}
			s.handleLine(ctx, log, line)
		}
	}
}

// readLines performs the blocking reads. It hands lines over one at a time and
// never dispatches them itself.
func (s *StdIOServer) readLines(ctx context.Context, lines chan<- []byte, done chan<- error) {
	reader := bufio.NewReader(s.in)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			done <- err
			return
		}
	}
}

func (s *StdIOServer) handleLine(ctx context.Context, log observability.Logger, line []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": fmt.Sprint(r),
			}).Error("Unexpected error handling message")
		}
	}()

	if len(bytes.TrimSpace(line)) == 0 {
		return
	}

	ctx, span := observability.StartSpan(ctx, "StdIOServer.handleLine")
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	request, err := Decode(line)
	if err != nil {
		log.WithErr(err).Error("Failed to unmarshal message")
		spanErr = err
		return
	}

	response := s.HandleRequest(ctx, request)

	if err = Encode(s.out, response); err != nil {
		log.WithErr(err).Error("Failed to write response")
		spanErr = err
	}
}
