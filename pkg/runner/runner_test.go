package runner_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/pkg/adapters/memory"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/aretw0/unabs/pkg/runner"
	"github.com/aretw0/unabs/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hello = "`r```````````.H.e.l.l.o. .w.o.r.l.di"

// recordingStore counts saves and lets a test react to them.
type recordingStore struct {
	ports.SessionStore
	mu     sync.Mutex
	saves  int
	onSave func(n int)
}

func (s *recordingStore) Save(ctx context.Context, sess *domain.Session) error {
	if err := s.SessionStore.Save(ctx, sess); err != nil {
		return err
	}
	s.mu.Lock()
	s.saves++
	n := s.saves
	s.mu.Unlock()
	if s.onSave != nil {
		s.onSave(n)
	}
	return nil
}

func TestRunner_Ephemeral(t *testing.T) {
	var out strings.Builder
	r := runner.NewRunner(runner.WithOutput(&out))

	sess, err := r.Run(context.Background(), hello)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out.String())
	assert.Equal(t, domain.StatusHalted, sess.Status)
	assert.Equal(t, "i", sess.Result)
}

func TestRunner_MaxSteps(t *testing.T) {
	var out strings.Builder
	r := runner.NewRunner(
		runner.WithOutput(&out),
		runner.WithCheckpointEvery(7),
		runner.WithMaxSteps(100),
	)

	sess, err := r.Run(context.Background(), "``ci`.x`ci")
	require.ErrorIs(t, err, machine.ErrStepLimit)
	assert.Equal(t, uint64(100), sess.Steps)
	assert.Equal(t, domain.StatusSuspended, sess.Status)
	assert.Empty(t, sess.Output)

	want, err := unabs.New().ExecuteLimit(context.Background(), "``ci`.x`ci", &strings.Builder{}, 100)
	require.ErrorIs(t, err, machine.ErrStepLimit)
	assert.Equal(t, want.Steps, sess.Steps)
	assert.NotEmpty(t, out.String())
	assert.Empty(t, strings.Trim(out.String(), "x"))
}

func TestRunner_EphemeralKeepsNoOutput(t *testing.T) {
	var out strings.Builder
	var events []domain.RunEvent
	eng := unabs.New(unabs.WithLifecycleHooks(domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, ev *domain.RunEvent) { events = append(events, *ev) },
	}))
	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithOutput(&out),
		runner.WithCheckpointEvery(1),
		runner.WithMaxSteps(5000),
	)

	sess, err := r.Run(context.Background(), "``ci`.x`ci")
	require.ErrorIs(t, err, machine.ErrStepLimit)
	assert.Equal(t, uint64(5000), sess.Steps)
	assert.Empty(t, sess.Output)
	assert.Empty(t, sess.Snapshot)
	assert.Greater(t, out.Len(), 100)

	// One pass through the machine, not one per checkpoint.
	assert.Len(t, events, 1)
}

func TestRunner_Checkpoints(t *testing.T) {
	store := &recordingStore{SessionStore: memory.NewStore()}
	var out strings.Builder
	r := runner.NewRunner(
		runner.WithOutput(&out),
		runner.WithSessions(session.NewManager(store)),
		runner.WithSessionID("job"),
		runner.WithCheckpointEvery(5),
	)

	sess, err := r.Run(context.Background(), hello)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out.String())

	// One save to reserve the ID, then one per chunk.
	wantSaves := 1 + int((sess.Steps+4)/5)
	assert.Equal(t, wantSaves, store.saves)

	stored, err := store.Load(context.Background(), "job")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalted, stored.Status)
	assert.Equal(t, "Hello world\n", stored.Output)
}

func TestRunner_ResumeAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &recordingStore{SessionStore: memory.NewStore()}
	store.onSave = func(n int) {
		if n == 2 {
			cancel()
		}
	}
	manager := session.NewManager(store)

	var first strings.Builder
	r := runner.NewRunner(
		runner.WithOutput(&first),
		runner.WithSessions(manager),
		runner.WithSessionID("job"),
		runner.WithCheckpointEvery(5),
	)
	sess, err := r.Run(ctx, hello)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StatusSuspended, sess.Status)

	stored, err := store.Load(context.Background(), "job")
	require.NoError(t, err)
	assert.Equal(t, sess.Steps, stored.Steps)

	var second strings.Builder
	r = runner.NewRunner(
		runner.WithOutput(&second),
		runner.WithSessions(manager),
		runner.WithSessionID("job"),
		runner.WithCheckpointEvery(5),
	)
	sess, err = r.Run(context.Background(), hello)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", first.String()+second.String())
	assert.Equal(t, "Hello world\n", sess.Output)

	want, err := unabs.New().Execute(context.Background(), hello, &strings.Builder{})
	require.NoError(t, err)
	assert.Equal(t, want.Steps, sess.Steps)
}

func TestRunner_ResumeDifferentProgram(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	opts := []runner.Option{
		runner.WithOutput(&strings.Builder{}),
		runner.WithSessions(manager),
		runner.WithSessionID("job"),
		runner.WithMaxSteps(3),
	}

	_, err := runner.NewRunner(opts...).Run(context.Background(), hello)
	require.ErrorIs(t, err, machine.ErrStepLimit)

	_, err = runner.NewRunner(opts...).Run(context.Background(), "`ii")
	assert.ErrorContains(t, err, "different program")
}

func TestRunner_SyntaxError(t *testing.T) {
	_, err := runner.NewRunner().Run(context.Background(), "``ii")
	assert.Error(t, err)
}
