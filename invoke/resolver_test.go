package invoke_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"converter-kit/config"
	"converter-kit/convert"
	"converter-kit/invoke"
	"converter-kit/logging"
)

type counter struct {
	n int
}

func (c *counter) Add(delta *int) int {
	c.n += *delta
	return c.n
}

func (c *counter) Reset() { c.n = 0 }

func (c counter) Value() int { return c.n }

func (c counter) Divide(by int) (int, error) {
	if by == 0 {
		return 0, errors.New("division by zero")
	}

	return c.n / by, nil
}

func (c counter) Split() (int, int) { return c.n / 2, c.n - c.n/2 }

func (c counter) Explode() { panic("boom") }

func varargs2(first int, rest ...int) int {
	sum := first
	for _, r := range rest {
		sum += r
	}

	return sum
}

func functions() *invoke.Table {
	return invoke.NewTable().
		MustRegister("varargs2", varargs2).
		MustRegister("join", func(sep string, parts ...string) string { return strings.Join(parts, sep) }).
		MustRegister("describe", func(v int) string { return fmt.Sprintf("int %d", v) }).
		MustRegister("describe", func(v string) string { return "string " + v }).
		MustRegister("describe", func(v any) string { return fmt.Sprintf("any %v", v) }).
		MustRegister("double", func(v float64) float64 { return v * 2 }).
		MustRegister("length", func(s []int) int { return len(s) })
}

func newResolver(t *testing.T) *invoke.Resolver {
	t.Helper()

	registry, err := convert.NewRegistry(convert.WithConfig(config.Config{TimeZone: "UTC"}))
	require.NoError(t, err)

	return invoke.New(invoke.WithRegistry(registry))
}

func TestResolve_Autoboxing(t *testing.T) {
	r := newResolver(t)
	c := &counter{}

	member, err := r.Resolve(c, "Add", 5)
	require.NoError(t, err)
	assert.Equal(t, "Add", member.Name)

	out, err := r.Invoke(c, "Add", false, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, out)

	n := 3
	out, err = r.Invoke(c, "Add", false, &n)
	require.NoError(t, err)
	assert.Equal(t, 8, out)
}

func TestResolve_Varargs(t *testing.T) {
	r := newResolver(t)
	table := functions()

	tests := []struct {
		name string
		args []any
		want any
	}{
		{"no trailing", []any{1}, 1},
		{"two trailing", []any{1, 1, 2}, 4},
		{"slice trailing", []any{1, []int{2, 3}}, 6},
		{"nil slice", []any{1, nil}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.Lookup(table, "varargs2", tt.args...)
			require.True(t, ok)

			out, err := r.Invoke(table, "varargs2", false, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, ok := r.Lookup(table, "varargs2")
	assert.False(t, ok)

	_, ok = r.Lookup(table, "varargs2", 1, "x")
	assert.False(t, ok)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	r := newResolver(t)
	table := functions()

	out, err := r.Invoke(table, "describe", false, 1)
	require.NoError(t, err)
	assert.Equal(t, "int 1", out)

	out, err = r.Invoke(table, "describe", false, "a")
	require.NoError(t, err)
	assert.Equal(t, "string a", out)

	out, err = r.Invoke(table, "describe", false, 1.5)
	require.NoError(t, err)
	assert.Equal(t, "any 1.5", out)
}

func TestInvoke_Coerce(t *testing.T) {
	r := newResolver(t)
	table := functions()

	_, err := r.Invoke(table, "double", false, "2.5")
	require.ErrorIs(t, err, invoke.ErrMemberNotFound)

	out, err := r.Invoke(table, "double", true, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 5.0, out)

	out, err = r.Invoke(table, "varargs2", true, "1", "2", 3)
	require.NoError(t, err)
	assert.Equal(t, 6, out)

	out, err = r.Invoke(table, "varargs2", true, 1, []string{"2", "3"})
	require.NoError(t, err)
	assert.Equal(t, 6, out)

	out, err = r.Invoke(table, "length", true, "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, err = r.Invoke(table, "double", true, "two")
	require.ErrorIs(t, err, invoke.ErrMemberNotFound)
}

func TestInvoke_Results(t *testing.T) {
	r := newResolver(t)
	c := counter{n: 7}

	out, err := r.Invoke(c, "Value", false)
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	out, err = r.Invoke(c, "Divide", false, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	out, err = r.Invoke(c, "Split", false)
	require.NoError(t, err)
	assert.Equal(t, []any{3, 4}, out)

	out, err = r.Invoke(&c, "Reset", false)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 0, c.n)
}

func TestInvoke_Failures(t *testing.T) {
	r := newResolver(t)
	c := counter{n: 7}

	_, err := r.Invoke(c, "Divide", false, 0)
	require.ErrorIs(t, err, invoke.ErrInvocationFailed)
	assert.ErrorContains(t, err, "division by zero")

	_, err = r.Invoke(c, "Explode", false)
	require.ErrorIs(t, err, invoke.ErrInvocationFailed)
	assert.ErrorContains(t, err, "boom")

	var nilCounter *counter
	_, err = r.Invoke(nilCounter, "Value", false)
	require.ErrorIs(t, err, invoke.ErrIllegalAccess)

	_, err = r.Invoke(nil, "Value", false)
	require.ErrorIs(t, err, invoke.ErrIllegalAccess)

	// pointer receiver on a copy
	_, err = r.Invoke(c, "Reset", false)
	require.ErrorIs(t, err, invoke.ErrIllegalAccess)

	var illegal *invoke.IllegalAccessError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "Reset", illegal.Name)
}

func TestInvoke_InvocationErrorKeepsCause(t *testing.T) {
	cause := errors.New("cause")
	table := invoke.NewTable().MustRegister("fail", func() error { return cause })

	_, err := newResolver(t).Invoke(table, "fail", false)
	require.ErrorIs(t, err, cause)

	var failure *invoke.InvocationError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "fail()", failure.Member)
}

func TestResolve_NotFound(t *testing.T) {
	r := newResolver(t)

	_, err := r.Resolve(&counter{}, "Valeu")
	require.ErrorIs(t, err, invoke.ErrMemberNotFound)

	var notFound *invoke.MemberNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Valeu", notFound.Name)
	assert.Equal(t, []string{"Value"}, notFound.Suggestions)
	assert.ErrorContains(t, err, "did you mean Value")

	_, err = r.Resolve(functions(), "describe", 1, 2)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[int](), reflect.TypeFor[int]()}, notFound.Args)
}

func TestTableOf(t *testing.T) {
	value := invoke.TableOf(reflect.TypeFor[counter]())
	assert.Equal(t, []string{"Add", "Divide", "Explode", "Reset", "Split", "Value"}, value.Names())
	assert.Same(t, value, invoke.TableOf(reflect.TypeFor[counter]()))

	members := value.Members("Reset")
	require.Len(t, members, 1)
	assert.Equal(t, reflect.TypeFor[*counter](), members[0].Owner)

	members = value.Members("Value")
	require.Len(t, members, 1)
	assert.Equal(t, reflect.TypeFor[counter](), members[0].Owner)

	assert.Empty(t, invoke.TableOf(reflect.TypeFor[fmt.Stringer]()).Names())
}

func TestWithTable(t *testing.T) {
	table := invoke.NewTable().MustRegisterMethod("Total", (*counter).Add)
	r := invoke.New(invoke.WithTable(reflect.TypeFor[*counter](), table))

	out, err := r.Invoke(&counter{n: 1}, "Total", false, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, err = r.Invoke(&counter{}, "Add", false, 2)
	require.ErrorIs(t, err, invoke.ErrMemberNotFound)

	_, err = r.Invoke(table, "Total", false, 2)
	require.ErrorIs(t, err, invoke.ErrIllegalAccess)
}

func TestTable_RegisterErrors(t *testing.T) {
	table := invoke.NewTable()

	require.Error(t, table.Register("x", 42))
	require.Error(t, table.RegisterMethod("y", func() {}))
	assert.Panics(t, func() { table.MustRegister("z", "nope") })
	assert.Empty(t, table.Names())
}

func TestResolver_ZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := invoke.New(invoke.WithLogger(logging.NewZapAdapter(zap.New(core))))

	assert.Equal(t, 1, logs.FilterMessage("converter registry ready").Len())

	out, err := r.Invoke(&counter{n: 6}, "Value", false)
	require.NoError(t, err)
	assert.Equal(t, 6, out)

	invoked := logs.FilterMessage("invoking member").All()
	require.Len(t, invoked, 1)
	assert.Equal(t, false, invoked[0].ContextMap()["coerced"])

	_, err = r.Invoke(&counter{}, "Valeu", false)
	require.ErrorIs(t, err, invoke.ErrMemberNotFound)
	assert.Equal(t, 1, logs.FilterMessage("member not found").Len())
}
