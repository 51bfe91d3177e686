package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"resumebot/internal/messaging"
)

type fakeGateway struct {
	texts     []string
	documents []string
}

func (g *fakeGateway) SendText(ctx context.Context, identity, text string) error {
	g.texts = append(g.texts, text)
	return nil
}

func (g *fakeGateway) SendDocument(ctx context.Context, identity, url, caption string) error {
	g.documents = append(g.documents, url)
	return nil
}

type fakePipeline struct {
	result PipelineResult
	calls  []PipelineRequest
}

func (p *fakePipeline) Run(ctx context.Context, req PipelineRequest) PipelineResult {
	p.calls = append(p.calls, req)
	return p.result
}

const testPhone = "+15550001111"

func newTestMachine(result PipelineResult) (*Machine, *MemoryStore, *fakeGateway, *fakePipeline) {
	store := NewMemoryStore()
	gateway := &fakeGateway{}
	pipeline := &fakePipeline{result: result}
	machine := NewMachine(store, gateway, pipeline, zap.NewNop())
	return machine, store, gateway, pipeline
}

func send(t *testing.T, m *Machine, text string) {
	t.Helper()
	err := m.HandleMessage(context.Background(), messaging.InboundMessage{
		Identity: testPhone,
		RawText:  text,
	})
	if err != nil {
		t.Fatalf("handle %q: %v", text, err)
	}
}

func mustGet(t *testing.T, store *MemoryStore) State {
	t.Helper()
	state, err := store.Get(context.Background(), testPhone)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	return state
}

const longJobText = "Senior Backend Engineer needing Python, SQL, AWS. Build and operate our core services."

func TestFirstContactAsksForEmail(t *testing.T) {
	machine, store, gateway, _ := newTestMachine(PipelineResult{})

	send(t, machine, "hello")

	state := mustGet(t, store)
	if state.Step != StepCollectEmail {
		t.Fatalf("expected %s, got %s", StepCollectEmail, state.Step)
	}
	if len(gateway.texts) != 1 || !strings.Contains(gateway.texts[0], "email") {
		t.Fatalf("expected email prompt, got %v", gateway.texts)
	}
}

func TestGreetingUsesDisplayName(t *testing.T) {
	machine, _, gateway, _ := newTestMachine(PipelineResult{})

	err := machine.HandleMessage(context.Background(), messaging.InboundMessage{
		Identity:    testPhone,
		RawText:     "hi",
		DisplayName: "Ada",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(gateway.texts[0], "Ada") {
		t.Fatalf("expected greeting to include display name, got %q", gateway.texts[0])
	}
}

func TestValidEmailAdvancesToJobText(t *testing.T) {
	machine, store, gateway, _ := newTestMachine(PipelineResult{})

	send(t, machine, "hello")
	send(t, machine, "Ada@Example.com")

	state := mustGet(t, store)
	if state.Step != StepCollectJobText {
		t.Fatalf("expected %s, got %s", StepCollectJobText, state.Step)
	}
	if state.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", state.Email)
	}
	if !strings.Contains(gateway.texts[len(gateway.texts)-1], "job description") {
		t.Fatalf("expected job description prompt, got %v", gateway.texts)
	}
}

func TestInvalidEmailIncrementsAttempts(t *testing.T) {
	machine, store, _, _ := newTestMachine(PipelineResult{})

	send(t, machine, "hello")
	send(t, machine, "not-an-email")

	state := mustGet(t, store)
	if state.Step != StepCollectEmail || state.AttemptCount != 1 {
		t.Fatalf("expected step unchanged with attempt 1, got %+v", state)
	}
}

func TestThreeInvalidEmailsDeleteState(t *testing.T) {
	machine, store, gateway, _ := newTestMachine(PipelineResult{})

	send(t, machine, "hello")
	send(t, machine, "bad one")
	send(t, machine, "bad two")
	send(t, machine, "bad three")

	if _, err := store.Get(context.Background(), testPhone); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected state deleted after 3 invalid attempts, got %v", err)
	}
	last := gateway.texts[len(gateway.texts)-1]
	if !strings.Contains(last, "start over") {
		t.Fatalf("expected restart instruction, got %q", last)
	}
}

func TestShortJobDescriptionIncrementsAttempts(t *testing.T) {
	machine, store, _, pipeline := newTestMachine(PipelineResult{})

	send(t, machine, "hello")
	send(t, machine, "ada@example.com")
	send(t, machine, "Dev job")

	state := mustGet(t, store)
	if state.Step != StepCollectJobText || state.AttemptCount != 1 {
		t.Fatalf("expected step unchanged with attempt 1, got %+v", state)
	}
	if len(pipeline.calls) != 0 {
		t.Fatalf("pipeline must not run on invalid input")
	}
}

func TestAttemptCountResetsOnStepChange(t *testing.T) {
	machine, store, _, _ := newTestMachine(PipelineResult{})

	send(t, machine, "hello")
	send(t, machine, "bad email")
	send(t, machine, "bad email again")
	send(t, machine, "ada@example.com")

	state := mustGet(t, store)
	if state.Step != StepCollectJobText || state.AttemptCount != 0 {
		t.Fatalf("expected reset attempt count on new step, got %+v", state)
	}
}

func TestSuccessfulPipelineCompletesConversation(t *testing.T) {
	machine, store, gateway, pipeline := newTestMachine(PipelineResult{Success: true, Reply: "Here is your resume!"})

	send(t, machine, "hello")
	send(t, machine, "ada@example.com")
	send(t, machine, longJobText)

	if len(pipeline.calls) != 1 {
		t.Fatalf("expected one pipeline run, got %d", len(pipeline.calls))
	}
	req := pipeline.calls[0]
	if req.Email != "ada@example.com" || req.JobDescription != longJobText {
		t.Fatalf("unexpected pipeline request: %+v", req)
	}

	state := mustGet(t, store)
	if state.Step != StepCompleted {
		t.Fatalf("expected %s, got %s", StepCompleted, state.Step)
	}

	var sawAck, sawResult bool
	for _, text := range gateway.texts {
		if strings.Contains(text, "Working on it") {
			sawAck = true
		}
		if text == "Here is your resume!" {
			sawResult = true
		}
	}
	if !sawAck || !sawResult {
		t.Fatalf("expected ack then result, got %v", gateway.texts)
	}
}

func TestPipelineFailureDeletesState(t *testing.T) {
	machine, store, gateway, _ := newTestMachine(PipelineResult{Success: false, Reply: "Sorry, something went wrong. Please try again later."})

	send(t, machine, "hello")
	send(t, machine, "ada@example.com")
	send(t, machine, longJobText)

	if _, err := store.Get(context.Background(), testPhone); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected state deleted on failure, got %v", err)
	}
	last := gateway.texts[len(gateway.texts)-1]
	if !strings.Contains(last, "Sorry") {
		t.Fatalf("expected failure reply, got %q", last)
	}
}

func TestCancelKeywordDeletesStateFromAnyStep(t *testing.T) {
	for _, setup := range []struct {
		name     string
		messages []string
	}{
		{"collecting_email", []string{"hello"}},
		{"collecting_job_description", []string{"hello", "ada@example.com"}},
	} {
		t.Run(setup.name, func(t *testing.T) {
			machine, store, gateway, _ := newTestMachine(PipelineResult{})
			for _, msg := range setup.messages {
				send(t, machine, msg)
			}

			send(t, machine, "Cancel")

			if _, err := store.Get(context.Background(), testPhone); !errors.Is(err, ErrStateNotFound) {
				t.Fatalf("expected state deleted on cancel, got %v", err)
			}
			last := gateway.texts[len(gateway.texts)-1]
			if !strings.Contains(last, "cancelled") {
				t.Fatalf("expected cancellation ack, got %q", last)
			}
		})
	}
}

func TestCancelKeywordInsideJobTextDoesNotCancel(t *testing.T) {
	machine, store, _, pipeline := newTestMachine(PipelineResult{Success: true, Reply: "done"})

	send(t, machine, "hello")
	send(t, machine, "ada@example.com")
	send(t, machine, "We need an engineer who can stop regressions and exit bad deploys cleanly, with Python experience.")

	if len(pipeline.calls) != 1 {
		t.Fatalf("expected pipeline run, keyword mention must not cancel")
	}
	state := mustGet(t, store)
	if state.Step != StepCompleted {
		t.Fatalf("expected completion, got %+v", state)
	}
}

func TestMessageAfterCompletionStartsOver(t *testing.T) {
	machine, store, _, _ := newTestMachine(PipelineResult{Success: true, Reply: "done"})

	send(t, machine, "hello")
	send(t, machine, "ada@example.com")
	send(t, machine, longJobText)
	send(t, machine, "another one please")

	state := mustGet(t, store)
	if state.Step != StepCollectEmail || state.Email != "" {
		t.Fatalf("expected fresh conversation after completion, got %+v", state)
	}
}

func TestMessageDuringProcessingGetsHoldReply(t *testing.T) {
	machine, store, gateway, _ := newTestMachine(PipelineResult{})

	_ = store.Put(context.Background(), State{
		Phone:          testPhone,
		Step:           StepProcessing,
		LastActivityAt: time.Now().UTC(),
	}, 0)

	send(t, machine, "are you there?")

	last := gateway.texts[len(gateway.texts)-1]
	if !strings.Contains(last, "Still working") {
		t.Fatalf("expected hold reply, got %q", last)
	}
	if mustGet(t, store).Step != StepProcessing {
		t.Fatalf("processing step must not change on chatter")
	}
}

func TestSweepIdleEvictsStaleStatesRegardlessOfStep(t *testing.T) {
	machine, store, _, _ := newTestMachine(PipelineResult{})
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	machine.Now = func() time.Time { return now }

	ctx := context.Background()
	_ = store.Put(ctx, State{Phone: "stale-email", Step: StepCollectEmail, LastActivityAt: now.Add(-time.Hour)}, 0)
	_ = store.Put(ctx, State{Phone: "stale-processing", Step: StepProcessing, LastActivityAt: now.Add(-45 * time.Minute)}, 0)
	_ = store.Put(ctx, State{Phone: "fresh", Step: StepCollectJobText, LastActivityAt: now.Add(-5 * time.Minute)}, 0)

	if evicted := machine.SweepIdle(ctx); evicted != 2 {
		t.Fatalf("expected 2 evictions, got %d", evicted)
	}
	if _, err := store.Get(ctx, "fresh"); err != nil {
		t.Fatalf("fresh state must survive sweep, got %v", err)
	}
	if _, err := store.Get(ctx, "stale-processing"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("stale processing state must be evicted, got %v", err)
	}
}

func TestIdentityIsNormalized(t *testing.T) {
	machine, store, _, _ := newTestMachine(PipelineResult{})

	err := machine.HandleMessage(context.Background(), messaging.InboundMessage{
		Identity: "+1 (555) 000-1111",
		RawText:  "hello",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if _, err := store.Get(context.Background(), testPhone); err != nil {
		t.Fatalf("expected state under sanitized key, got %v", err)
	}
}
