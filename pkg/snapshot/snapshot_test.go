package snapshot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/unabs/pkg/machine"
	"github.com/aretw0/unabs/pkg/snapshot"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src string, s machine.State) machine.State {
	t.Helper()
	snap, err := snapshot.Capture(term.NewIndex(term.MustParse(src)), s)
	require.NoError(t, err)
	data, err := snapshot.Marshal(snap)
	require.NoError(t, err)

	decoded, err := snapshot.Unmarshal(data)
	require.NoError(t, err)
	require.False(t, decoded.Halted())

	// A fresh parse stands in for a different process.
	restored, v, err := decoded.Restore(term.NewIndex(term.MustParse(src)))
	require.NoError(t, err)
	require.Nil(t, v)
	return restored
}

func TestRestore_ResumesEquivalently(t *testing.T) {
	programs := []string{
		"`r```````````.H.e.l.l.o. .w.o.r.l.di",
		"``ci.x",
		"```s`d`.xi`d`.xii",
		"`.a`c`ki",
		"`k`ci",
	}
	ctx := context.Background()

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			var want strings.Builder
			full, err := machine.RunTerm(ctx, term.MustParse(src), &want)
			require.NoError(t, err)

			for cut := uint64(1); cut < full.Steps; cut++ {
				var got strings.Builder
				first, err := machine.RunTerm(ctx, term.MustParse(src), &got, machine.WithMaxSteps(cut))
				require.ErrorIs(t, err, machine.ErrStepLimit)

				resumed := roundTrip(t, src, first.State)
				assert.Equal(t, first.State.String(), resumed.String())

				rest, err := machine.Run(ctx, resumed, &got)
				require.NoError(t, err)
				assert.Equal(t, want.String(), got.String(), "cut at %d", cut)
				assert.Equal(t, full.Value.String(), rest.Value.String(), "cut at %d", cut)
				assert.Equal(t, full.Steps, first.Steps+rest.Steps, "cut at %d", cut)
			}
		})
	}
}

func TestRestore_PreservesSharing(t *testing.T) {
	k := &machine.BindV{F: machine.Put0{Char: 'a'}}
	s := machine.ApplyV{F: &machine.C1{K: k}, X: &machine.C1{K: k}, K: k}

	restored := roundTrip(t, "i", s)
	av, ok := restored.(machine.ApplyV)
	require.True(t, ok)

	f := av.F.(*machine.C1)
	x := av.X.(*machine.C1)
	assert.Same(t, f.K, x.K)
	assert.Same(t, f.K, av.K)
	assert.Equal(t, s.String(), restored.String())
}

func TestCapture_SharedFramesWrittenOnce(t *testing.T) {
	k := &machine.BindW{X: machine.I0{}}
	c := &machine.C1{K: k}
	s := machine.ApplyV{F: c, X: c, K: k}

	snap, err := snapshot.Capture(term.NewIndex(term.MustParse("i")), s)
	require.NoError(t, err)
	// i, bindw, c1
	assert.Len(t, snap.Nodes, 3)
}

func TestCapture_DeepContinuation(t *testing.T) {
	n := 20_000
	src := strings.Repeat("`", n) + strings.Repeat("i", n+1)
	res, err := machine.RunTerm(context.Background(), term.MustParse(src), machine.Discard,
		machine.WithMaxSteps(uint64(n)))
	require.ErrorIs(t, err, machine.ErrStepLimit)
	require.Equal(t, n, machine.Depth(res.State.Kont()))

	restored := roundTrip(t, src, res.State)
	assert.Equal(t, n, machine.Depth(restored.Kont()))
}

func TestCaptureResult(t *testing.T) {
	src := "`k`ci"
	idx := term.NewIndex(term.MustParse(src))
	res, err := machine.RunTerm(context.Background(), idx.Root(), machine.Discard)
	require.NoError(t, err)

	snap, err := snapshot.CaptureResult(idx, res.Value)
	require.NoError(t, err)
	require.True(t, snap.Halted())

	s, v, err := snap.Restore(idx)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, "`k`c(`k())", v.String())
}

func TestCapture_ForeignTerm(t *testing.T) {
	idx := term.NewIndex(term.MustParse("`ii"))
	_, err := snapshot.Capture(idx, machine.Start(term.MustParse("`ii")))
	assert.ErrorIs(t, err, snapshot.ErrUnknownTerm)
}

func TestRestore_Rejects(t *testing.T) {
	idx := term.NewIndex(term.MustParse("`ii"))
	zero := 0
	dangling := 5
	far := 99

	tests := []struct {
		name string
		snap snapshot.Snapshot
		want error
	}{
		{
			name: "version",
			snap: snapshot.Snapshot{Version: 99, Value: &zero, Nodes: []snapshot.Node{{Kind: "i"}}},
			want: snapshot.ErrVersion,
		},
		{
			name: "dangling ref",
			snap: snapshot.Snapshot{Version: snapshot.Version, Nodes: []snapshot.Node{{Kind: "k1", Refs: []int{3}}}, Value: &zero},
			want: snapshot.ErrCorrupt,
		},
		{
			name: "dangling result",
			snap: snapshot.Snapshot{Version: snapshot.Version, Nodes: []snapshot.Node{{Kind: "i"}}, Value: &dangling},
			want: snapshot.ErrCorrupt,
		},
		{
			name: "unknown kind",
			snap: snapshot.Snapshot{Version: snapshot.Version, Nodes: []snapshot.Node{{Kind: "x"}}, Value: &zero},
			want: snapshot.ErrCorrupt,
		},
		{
			name: "value where continuation expected",
			snap: snapshot.Snapshot{
				Version: snapshot.Version,
				Nodes:   []snapshot.Node{{Kind: "i"}},
				State:   &snapshot.Node{Kind: "applyk", Refs: []int{0, 0}},
			},
			want: snapshot.ErrCorrupt,
		},
		{
			name: "term outside program",
			snap: snapshot.Snapshot{
				Version: snapshot.Version,
				State:   &snapshot.Node{Kind: "eval", Term: &far, Refs: []int{-1}},
			},
			want: snapshot.ErrUnknownTerm,
		},
		{
			name: "neither state nor value",
			snap: snapshot.Snapshot{Version: snapshot.Version},
			want: snapshot.ErrCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.snap.Restore(idx)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnmarshal_Garbage(t *testing.T) {
	_, err := snapshot.Unmarshal([]byte("{not json"))
	assert.ErrorIs(t, err, snapshot.ErrCorrupt)
}
