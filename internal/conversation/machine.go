package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"resumebot/internal/messaging"
	"resumebot/internal/shared/util"
)

// PipelineRequest carries the collected inputs into the generation pipeline.
type PipelineRequest struct {
	Email          string
	Phone          string
	DisplayName    string
	JobDescription string
}

// PipelineResult is the pipeline's outcome. Reply is the final user-facing
// text; the document itself is delivered by the pipeline when Success is true.
type PipelineResult struct {
	Success bool
	Reply   string
}

// Pipeline runs the full tailoring pipeline for one collected conversation.
type Pipeline interface {
	Run(ctx context.Context, req PipelineRequest) PipelineResult
}

const (
	defaultMaxAttempts    = 3
	defaultMinJobTextLen  = 50
	defaultIdleTTL        = 30 * time.Minute
	defaultCompletedGrace = 5 * time.Minute
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// cancelKeywords end a conversation from any step. Matched against the whole
// trimmed message so job descriptions that merely mention a keyword don't
// cancel the flow.
var cancelKeywords = map[string]struct{}{
	"cancel":  {},
	"stop":    {},
	"quit":    {},
	"exit":    {},
	"restart": {},
	"reset":   {},
}

const (
	replyGreeting = "Hi%s! I can tailor your resume to a job posting. " +
		"First, what's the email address on your profile?"
	replyEmailRetry = "That doesn't look like a valid email address. " +
		"Please send it like name@example.com."
	replyAskJobText = "Great. Now paste the full job description you're applying for."
	replyJobTextRetry = "That job description looks too short. " +
		"Please paste the complete posting, including requirements."
	replyTooManyAttempts = "I couldn't understand that after a few tries. " +
		"Send me any message to start over."
	replyProcessing = "Working on it! I'll send your tailored resume in a moment."
	replyStillWorking = "Still working on your resume, hang tight."
	replyCancelled = "Okay, I've cancelled this request. " +
		"Send me any message whenever you want to start again."
)

// Machine applies conversation transitions for inbound messages. One instance
// serves all conversations; isolation comes from the phone key.
type Machine struct {
	Store          Store
	Gateway        messaging.Gateway
	Pipeline       Pipeline
	Log            *zap.Logger
	MaxAttempts    int
	MinJobTextLen  int
	IdleTTL        time.Duration
	CompletedGrace time.Duration
	Now            func() time.Time
}

// NewMachine constructs a Machine with default thresholds.
func NewMachine(store Store, gateway messaging.Gateway, pipeline Pipeline, log *zap.Logger) *Machine {
	return &Machine{
		Store:          store,
		Gateway:        gateway,
		Pipeline:       pipeline,
		Log:            log,
		MaxAttempts:    defaultMaxAttempts,
		MinJobTextLen:  defaultMinJobTextLen,
		IdleTTL:        defaultIdleTTL,
		CompletedGrace: defaultCompletedGrace,
		Now:            time.Now,
	}
}

// HandleMessage processes one inbound message and advances that phone's
// conversation. Errors are store/infrastructure failures; user mistakes are
// handled with reply messages, not errors.
func (m *Machine) HandleMessage(ctx context.Context, msg messaging.InboundMessage) error {
	phone := util.SanitizePhone(msg.Identity)
	if phone == "" {
		return fmt.Errorf("inbound message without a usable identity")
	}
	text := strings.TrimSpace(msg.RawText)

	if _, cancelled := cancelKeywords[strings.ToLower(text)]; cancelled {
		return m.cancel(ctx, phone)
	}

	state, err := m.Store.Get(ctx, phone)
	if err != nil {
		if err != ErrStateNotFound {
			return err
		}
		return m.begin(ctx, phone, msg.DisplayName)
	}

	// A message after completion starts a fresh conversation.
	if state.Step == StepCompleted {
		if err := m.Store.Delete(ctx, phone); err != nil {
			return err
		}
		return m.begin(ctx, phone, msg.DisplayName)
	}

	state.LastActivityAt = m.now()

	switch state.Step {
	case StepCollectEmail:
		return m.collectEmail(ctx, state, text)
	case StepCollectJobText:
		return m.collectJobText(ctx, state, msg.DisplayName, text)
	case StepProcessing:
		m.reply(ctx, phone, replyStillWorking)
		return m.Store.Put(ctx, state, m.idleTTL())
	default:
		// Unknown or stale step: reset the conversation.
		if err := m.Store.Delete(ctx, phone); err != nil {
			return err
		}
		return m.begin(ctx, phone, msg.DisplayName)
	}
}

// SweepIdle deletes every state idle beyond the threshold and returns the
// eviction count. Called from the periodic sweep.
func (m *Machine) SweepIdle(ctx context.Context) int {
	states, err := m.Store.List(ctx)
	if err != nil {
		m.Log.Error("idle sweep listing failed", zap.Error(err))
		return 0
	}

	cutoff := m.now().Add(-m.idleTTL())
	evicted := 0
	for _, state := range states {
		if !state.LastActivityAt.Before(cutoff) {
			continue
		}
		if err := m.Store.Delete(ctx, state.Phone); err != nil {
			m.Log.Warn("idle sweep delete failed",
				zap.String("phone", state.Phone),
				zap.Error(err))
			continue
		}
		evicted++
	}
	if evicted > 0 {
		m.Log.Info("idle conversations evicted", zap.Int("count", evicted))
	}
	return evicted
}

func (m *Machine) begin(ctx context.Context, phone, displayName string) error {
	state := State{
		Phone:          phone,
		Step:           StepCollectEmail,
		LastActivityAt: m.now(),
	}
	if err := m.Store.Put(ctx, state, m.idleTTL()); err != nil {
		return err
	}

	name := ""
	if trimmed := strings.TrimSpace(displayName); trimmed != "" {
		name = " " + trimmed
	}
	m.reply(ctx, phone, fmt.Sprintf(replyGreeting, name))
	return nil
}

func (m *Machine) collectEmail(ctx context.Context, state State, text string) error {
	if !emailPattern.MatchString(text) {
		return m.invalidInput(ctx, state, replyEmailRetry)
	}

	state.Email = strings.ToLower(text)
	state.Step = StepCollectJobText
	state.AttemptCount = 0
	if err := m.Store.Put(ctx, state, m.idleTTL()); err != nil {
		return err
	}
	m.reply(ctx, state.Phone, replyAskJobText)
	return nil
}

func (m *Machine) collectJobText(ctx context.Context, state State, displayName, text string) error {
	if len(text) < m.minJobTextLen() {
		return m.invalidInput(ctx, state, replyJobTextRetry)
	}

	state.JobDescription = text
	state.Step = StepProcessing
	state.AttemptCount = 0
	if err := m.Store.Put(ctx, state, m.idleTTL()); err != nil {
		return err
	}
	m.reply(ctx, state.Phone, replyProcessing)

	result := m.Pipeline.Run(ctx, PipelineRequest{
		Email:          state.Email,
		Phone:          state.Phone,
		DisplayName:    displayName,
		JobDescription: state.JobDescription,
	})

	if result.Reply != "" {
		m.reply(ctx, state.Phone, result.Reply)
	}

	if !result.Success {
		m.Log.Info("conversation ended after pipeline failure",
			zap.String("phone", state.Phone))
		return m.Store.Delete(ctx, state.Phone)
	}

	state.Step = StepCompleted
	state.LastActivityAt = m.now()
	return m.Store.Put(ctx, state, m.completedGrace())
}

func (m *Machine) invalidInput(ctx context.Context, state State, retryReply string) error {
	state.AttemptCount++
	if state.AttemptCount >= m.maxAttempts() {
		if err := m.Store.Delete(ctx, state.Phone); err != nil {
			return err
		}
		m.reply(ctx, state.Phone, replyTooManyAttempts)
		return nil
	}
	if err := m.Store.Put(ctx, state, m.idleTTL()); err != nil {
		return err
	}
	m.reply(ctx, state.Phone, retryReply)
	return nil
}

func (m *Machine) cancel(ctx context.Context, phone string) error {
	if err := m.Store.Delete(ctx, phone); err != nil {
		return err
	}
	m.reply(ctx, phone, replyCancelled)
	m.Log.Info("conversation cancelled", zap.String("phone", phone))
	return nil
}

// reply delivers a text message, logging send failures instead of failing the
// transition: state changes must not depend on chat delivery.
func (m *Machine) reply(ctx context.Context, phone, text string) {
	if err := m.Gateway.SendText(ctx, phone, text); err != nil {
		m.Log.Warn("reply delivery failed",
			zap.String("phone", phone),
			zap.Error(err))
	}
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func (m *Machine) maxAttempts() int {
	if m.MaxAttempts > 0 {
		return m.MaxAttempts
	}
	return defaultMaxAttempts
}

func (m *Machine) minJobTextLen() int {
	if m.MinJobTextLen > 0 {
		return m.MinJobTextLen
	}
	return defaultMinJobTextLen
}

func (m *Machine) idleTTL() time.Duration {
	if m.IdleTTL > 0 {
		return m.IdleTTL
	}
	return defaultIdleTTL
}

func (m *Machine) completedGrace() time.Duration {
	if m.CompletedGrace > 0 {
		return m.CompletedGrace
	}
	return defaultCompletedGrace
}
