package plugin

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/heyjunin/reactlog/pkg/logger"
	"github.com/heyjunin/reactlog/pkg/reactive"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistrar records registered hooks
type fakeRegistrar struct {
	hooks []reactive.Hooks
}

func (r *fakeRegistrar) Register(h reactive.Hooks) {
	r.hooks = append(r.hooks, h)
}

// computed is a second Value variant, to check logging is not tied to Variable.
type computed struct {
	name string
	fn   func() any
}

func (c *computed) Name() string { return c.name }
func (c *computed) Value() any   { return c.fn() }

func newTestLogger(t *testing.T) (*ReactiveLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logger.NewBare(&buf)
	return New(Config{Logger: &l}), &buf
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimSuffix(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func rawID(v reactive.Value) string {
	return fmt.Sprintf("%s(id=%d)", reactive.TypeTag(v), reactive.Identity(v))
}

func TestDisplayName(t *testing.T) {
	named := reactive.NewVariable(1)
	named.SetName("counter")
	assert.Equal(t, "counter", DisplayName(named))

	unnamed := reactive.NewVariable(1)
	assert.Equal(t, rawID(unnamed), DisplayName(unnamed))
	assert.True(t, strings.HasPrefix(DisplayName(unnamed), "Variable(id="))
	assert.NotEmpty(t, DisplayName(unnamed))

	c := &computed{fn: func() any { return 2 }}
	assert.True(t, strings.HasPrefix(DisplayName(c), "computed(id="))
}

func TestCreatedUnnamed(t *testing.T) {
	p, buf := newTestLogger(t)
	v := reactive.NewVariable(5)

	p.Created(v)

	want := fmt.Sprintf("Created Variable(id=%d) with value: 5", reactive.Identity(v))
	assert.Equal(t, []string{want}, lines(buf))
}

func TestUpdatedNamed(t *testing.T) {
	p, buf := newTestLogger(t)
	v := reactive.NewVariable(0)
	v.SetName("x")
	v.SetValue(10)

	p.Updated(v)

	assert.Equal(t, "Updated x to value: 10\n", buf.String())
}

func TestNamedUsesRawIdentity(t *testing.T) {
	p, buf := newTestLogger(t)
	v := reactive.NewVariable(1)
	v.SetName("y")

	p.Named(v)

	want := fmt.Sprintf("Named Variable(id=%d) as y", reactive.Identity(v))
	assert.Equal(t, []string{want}, lines(buf))
}

func TestNamedUnnamedValue(t *testing.T) {
	p, buf := newTestLogger(t)
	v := reactive.NewVariable(1)

	p.Named(v)

	id := rawID(v)
	assert.Equal(t, []string{"Named " + id + " as " + id}, lines(buf))
}

func TestCallbacksAreNotDeduplicated(t *testing.T) {
	p, buf := newTestLogger(t)
	v := reactive.NewVariable("a")
	v.SetName("s")

	p.Created(v)
	p.Created(v)
	p.Updated(v)
	p.Updated(v)

	got := lines(buf)
	require.Len(t, got, 4)
	assert.Equal(t, got[0], got[1])
	assert.Equal(t, got[2], got[3])
	assert.Equal(t, "Created s with value: a", got[0])
	assert.Equal(t, "Updated s to value: a", got[2])
}

func TestValueFormatting(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "Updated v to value: <nil>"},
		{name: "float", value: 1.5, want: "Updated v to value: 1.5"},
		{name: "slice", value: []int{1, 2}, want: "Updated v to value: [1 2]"},
		{name: "string", value: "hi", want: "Updated v to value: hi"},
		{name: "bool", value: true, want: "Updated v to value: true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, buf := newTestLogger(t)
			v := reactive.NewVariable(tt.value)
			v.SetName("v")

			p.Updated(v)

			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestComputedValueIsEvaluatedPerCall(t *testing.T) {
	p, buf := newTestLogger(t)
	n := 0
	c := &computed{name: "c", fn: func() any { n++; return n }}

	p.Updated(c)
	p.Updated(c)

	assert.Equal(t, []string{"Updated c to value: 1", "Updated c to value: 2"}, lines(buf))
}

func swapDefaultOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := DefaultOutput
	DefaultOutput = &buf
	t.Cleanup(func() { DefaultOutput = old })
	return &buf
}

func TestNewWithoutLoggerUsesDefaultSink(t *testing.T) {
	buf := swapDefaultOutput(t)
	p := New(Config{})
	require.NotNil(t, p.logger)
	assert.Equal(t, zerolog.InfoLevel, p.logger.GetLevel())

	v := reactive.NewVariable(10)
	v.SetName("x")
	p.logger.Debug().Msg("below info")
	p.Updated(v)

	// bare format: message only, no time or level prefix
	assert.Equal(t, "Updated x to value: 10\n", buf.String())
}

func TestDefaultFollowsDefaultOutput(t *testing.T) {
	buf := swapDefaultOutput(t)
	v := reactive.NewVariable(1)
	v.SetName("d")

	Default().Created(v)

	assert.Equal(t, "Created d with value: 1\n", buf.String())
}

func TestNewBorrowsLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewBare(&buf)

	p := New(Config{Logger: &l})

	assert.Same(t, &l, p.logger)
}

func TestRegisterUsesDefaultInstance(t *testing.T) {
	r := &fakeRegistrar{}

	p := Register(r)

	require.Len(t, r.hooks, 1)
	assert.Same(t, Default(), p)
	assert.Same(t, p, r.hooks[0])
	assert.Same(t, Default(), Default())
}
