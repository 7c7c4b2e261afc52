package service

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/event"
	"github.com/beacon-mobile/beacon/pkg/idgen"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
	"github.com/beacon-mobile/beacon/pkg/rum/sampler"
	"github.com/beacon-mobile/beacon/pkg/rum/scope"
)

const commandQueueSize = 256

// SessionSampler makes the keep/drop decision for one new session.
type SessionSampler interface {
	SampleSession(sessionID string) bool
}

// ProbabilisticSessionSampler draws independently per session.
type ProbabilisticSessionSampler struct {
	sampler *sampler.ProbabilisticSampler
}

func NewProbabilisticSessionSampler(rate float64, seed int64) *ProbabilisticSessionSampler {
	return &ProbabilisticSessionSampler{sampler: sampler.NewProbabilisticSampler(rate, seed)}
}

func (s *ProbabilisticSessionSampler) SampleSession(sessionID string) bool {
	return s.sampler.Sample()
}

// DeterministicSessionSampler keeps the decision a pure function of the
// session id, stable across restarts and monotonic in the rate.
type DeterministicSessionSampler struct {
	rate float64
}

func NewDeterministicSessionSampler(rate float64) *DeterministicSessionSampler {
	return &DeterministicSessionSampler{rate: rate}
}

func (s *DeterministicSessionSampler) SampleSession(sessionID string) bool {
	return sampler.NewDeterministicSampler(idgen.BaseID(sessionID), s.rate).Sample()
}

// Monitor is the single-consumer serialization point in front of the scope
// tree. Every command is funneled through one queue and processed strictly in
// enqueue order; no command runs concurrently with another. The current
// context is republished atomically after each processed command so
// concurrent readers (crash reporters, health checks) never observe a
// mid-update partial state.
type Monitor struct {
	deps           scope.Dependencies
	sessionSampler SessionSampler
	policy         SessionPolicy
	logger         *zap.Logger

	commands chan model.Command
	done     chan struct{}

	session         *scope.SessionScope
	lastCommandTime time.Time
	trackedViews    bool

	currentContext atomic.Pointer[model.Context]
}

func NewMonitor(
	deps scope.Dependencies,
	sessionSampler SessionSampler,
	policy SessionPolicy,
	logger *zap.Logger,
) *Monitor {
	m := &Monitor{
		deps:           deps,
		sessionSampler: sessionSampler,
		policy:         policy,
		logger:         logger,
		commands:       make(chan model.Command, commandQueueSize),
		done:           make(chan struct{}),
	}
	ctx := model.Context{ApplicationID: deps.ApplicationID}
	m.currentContext.Store(&ctx)
	return m
}

// Start launches the consumer goroutine.
func (m *Monitor) Start() {
	go m.run()
}

// Process enqueues one command. It blocks only when the queue is saturated,
// preserving per-producer arrival order.
func (m *Monitor) Process(command model.Command) {
	m.commands <- command
}

// Stop drains the queue and waits for the consumer to finish.
func (m *Monitor) Stop() {
	close(m.commands)
	<-m.done
}

// CurrentContext serves the crash-context mirror: the latest committed
// snapshot, safe to call from any goroutine.
func (m *Monitor) CurrentContext() model.Context {
	return *m.currentContext.Load()
}

func (m *Monitor) run() {
	defer close(m.done)
	for command := range m.commands {
		m.processCommand(command)
	}
}

func (m *Monitor) processCommand(command model.Command) {
	now := command.CommandTime()
	if m.session == nil {
		m.startSession(now)
	} else if m.policy.Expired(m.session.StartTime(), m.lastCommandTime, now) {
		m.logger.Info("Session expired, starting a new one",
			zap.String("session_id", m.session.SessionID()),
		)
		m.startSession(now)
	}

	m.session.Process(command)
	m.lastCommandTime = now

	ctx := m.session.Context()
	m.currentContext.Store(&ctx)
}

func (m *Monitor) startSession(startTime time.Time) {
	sessionID := m.deps.IDGenerator.NewID()
	sampled := m.sessionSampler.SampleSession(sessionID)

	sessionDeps := m.deps
	if !sampled {
		// dropped sessions still run the full state machine so the context
		// mirror stays accurate; only their output is silenced
		sessionDeps.EventOutput = event.NewNopOutput()
	}

	if m.session != nil && m.session.TrackedViews() {
		m.trackedViews = true
	}
	m.session = scope.NewSessionScope(sessionDeps, sessionID, startTime, sampled, m.trackedViews)
	m.logger.Info("Started new session",
		zap.String("session_id", sessionID),
		zap.Bool("sampled", sampled),
	)
}
