package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slade/internal/cmderr"
	"slade/internal/commands"
	"slade/internal/conversion"
	"slade/internal/logger"
	"slade/internal/output"
	"slade/internal/parser"
	"slade/internal/testutils"
)

type recorder struct {
	calls []string
}

func (r *recorder) commands(registrar *commands.Registrar) error {
	if err := commands.Register(registrar, "echo", func(v string) error {
		r.calls = append(r.calls, "echo:"+v)
		return nil
	}); err != nil {
		return err
	}
	if err := commands.Register(registrar, "pair", func(v []string) error {
		r.calls = append(r.calls, "pair:"+v[0]+"+"+v[1])
		return nil
	}); err != nil {
		return err
	}
	return commands.Register(registrar, "fail", func(v string) error {
		r.calls = append(r.calls, "fail:"+v)
		return errors.New("boom " + v)
	})
}

func slashEquals(rules *parser.RuleSet) {
	rules.Prefixes = parser.PrefixForwardSlash
	rules.Separators = parser.SeparatorEquals
	rules.AllowMultipleValues = true
	rules.AllowSwitches = false
}

func newTestApp(t *testing.T, args []string, options ...Option) (*Application, *recorder, *testutils.MockContext, *output.CaptureBuffer) {
	t.Helper()

	rec := &recorder{}
	appCtx := testutils.NewMockContext()
	printer, buffer := output.NewCapturePrinter()

	all := append([]Option{
		WithRules(slashEquals),
		WithCommands(rec.commands),
		WithPrinter(printer),
	}, options...)

	app, err := New("test", appCtx, args, all...)
	require.NoError(t, err)
	return app, rec, appCtx, buffer
}

func TestNew_Validation(t *testing.T) {
	_, err := New("test", nil, []string{})
	assert.ErrorIs(t, err, cmderr.ErrInvalidArgument)

	_, err = New("test", testutils.NewMockContext(), nil)
	assert.ErrorIs(t, err, cmderr.ErrInvalidArgument)
}

func TestNew_LoadsContext(t *testing.T) {
	appCtx := testutils.NewMockContext()

	app, err := New("test", appCtx, []string{})
	require.NoError(t, err)

	assert.Equal(t, "test", app.Name())
	assert.Equal(t, 1, appCtx.LoadCount())
	assert.Zero(t, appCtx.SaveCount())
	assert.Nil(t, app.Results())
}

func TestNew_LoadFailure(t *testing.T) {
	appCtx := testutils.NewMockContext()
	cause := errors.New("corrupt registry")
	appCtx.SetLoadError(cause)

	_, err := New("test", appCtx, []string{})
	assert.ErrorIs(t, err, cause)
}

func TestNew_DefaultRulesAreWindowsProfile(t *testing.T) {
	app, err := New("test", testutils.NewMockContext(), []string{})
	require.NoError(t, err)

	assert.Equal(t, parser.WindowsProfile(), app.RuleSet())
}

func TestRun_DispatchesRegisteredCommands(t *testing.T) {
	app, rec, appCtx, buffer := newTestApp(t, []string{
		"/echo=hello",
		"ignored",
		"/unknown=skip",
		"/pair=a;b",
	})

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, []string{"echo:hello", "pair:a+b"}, rec.calls)
	assert.Equal(t, 1, appCtx.SaveCount())
	assert.Empty(t, buffer.String())

	results := app.Results().Results()
	require.Len(t, results, 3)
	assert.True(t, results[0].Handled)
	assert.False(t, results[1].Handled)
	assert.True(t, results[2].Handled)
}

func TestRun_CommandNamesAreCaseInsensitive(t *testing.T) {
	app, rec, _, _ := newTestApp(t, []string{"/ECHO=loud"})

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, []string{"echo:loud"}, rec.calls)
}

func TestRun_Help(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "help key", args: []string{"/help"}},
		{name: "help key any case", args: []string{"/HELP"}},
		{name: "help as value of key-less command", args: []string{"/=help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, rec, _, buffer := newTestApp(t, tt.args)

			require.NoError(t, app.Run(context.Background()))

			assert.Equal(t, "ℹ Supported commands: echo, fail, pair\n", buffer.String())
			assert.Empty(t, rec.calls)
		})
	}
}

func TestRun_AbortModeStopsAtFirstFailure(t *testing.T) {
	app, rec, appCtx, buffer := newTestApp(t, []string{"/fail=1", "/echo=after", "/fail=2"})

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, cmderr.ErrExecutionFailed)
	assert.Equal(t, []string{"fail:1"}, rec.calls)
	assert.Equal(t, 1, appCtx.SaveCount())
	assert.Contains(t, buffer.String(), "✗ Application execution failed:")
	assert.Contains(t, buffer.String(), "boom 1")
}

func TestRun_ContinueModeIsolatesFailures(t *testing.T) {
	app, rec, appCtx, buffer := newTestApp(t, []string{"/fail=1", "/echo=after", "/fail=2"},
		WithErrorMode(ErrorModeContinue))

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, cmderr.ErrExecutionFailed)
	assert.Equal(t, []string{"fail:1", "echo:after", "fail:2"}, rec.calls)
	assert.Equal(t, 1, appCtx.SaveCount())
	assert.Contains(t, buffer.String(), "boom 1")
	assert.Contains(t, buffer.String(), "boom 2")
}

func TestRun_ContinueModeLogsEachFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, logger.Configure("warn", logPath))
	t.Cleanup(func() { _ = logger.Configure("", "") })

	app, _, _, _ := newTestApp(t, []string{"/fail=1", "/fail=2"}, WithErrorMode(ErrorModeContinue))
	require.Error(t, app.Run(context.Background()))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "Command failed, continuing"))
}

func TestRun_ConversionFailureIsReported(t *testing.T) {
	app, rec, _, _ := newTestApp(t, []string{"/pair=only-one"})

	err := app.Run(context.Background())

	assert.ErrorIs(t, err, cmderr.ErrNotSupported)
	assert.Empty(t, rec.calls)
}

func TestRun_SavesWhenSaveFails(t *testing.T) {
	app, _, appCtx, buffer := newTestApp(t, []string{"/echo=x"})
	cause := errors.New("read-only file system")
	appCtx.SetSaveError(cause)

	err := app.Run(context.Background())

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buffer.String(), "Failed to save application context")
}

func TestRun_CancelledContext(t *testing.T) {
	app, rec, appCtx, _ := newTestApp(t, []string{"/echo=never"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
	assert.Equal(t, 1, appCtx.SaveCount())
}

func TestRun_RegistrationFailure(t *testing.T) {
	appCtx := testutils.NewMockContext()
	printer, buffer := output.NewCapturePrinter()
	app, err := New("test", appCtx, []string{}, WithPrinter(printer), WithCommands(func(r *commands.Registrar) error {
		return commands.Register(r, "count", func(int) error { return nil })
	}))
	require.NoError(t, err)

	err = app.Run(context.Background())

	assert.ErrorIs(t, err, cmderr.ErrNotSupported)
	assert.Zero(t, appCtx.SaveCount())
	assert.Contains(t, buffer.String(), "✗ Failed to initialize application:\n")
	assert.Contains(t, buffer.String(), "count")
}

func TestRun_InitializesOnce(t *testing.T) {
	setups := 0
	app, err := New("test", testutils.NewMockContext(), []string{}, WithCommands(func(*commands.Registrar) error {
		setups++
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, 1, setups)
}

func TestWithConverters_CustomType(t *testing.T) {
	var listed bool
	app, err := New("test", testutils.NewMockContext(), []string{"/list"},
		WithRules(slashEquals),
		WithPrinter(output.NewPrinter(output.Silent())),
		WithConverters(func(f *conversion.Factory) {
			conversion.Register(f, func() conversion.Converter[bool] { return conversion.BoolConverter{} })
		}),
		WithCommands(func(r *commands.Registrar) error {
			return commands.Register(r, "list", func(v bool) error {
				listed = v
				return nil
			})
		}),
	)
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, listed)
}

func TestParseErrorMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ErrorMode
		wantErr  bool
	}{
		{input: "", expected: ErrorModeAbort},
		{input: "abort", expected: ErrorModeAbort},
		{input: " Continue ", expected: ErrorModeContinue},
		{input: "retry", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseErrorMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, cmderr.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	assert.Equal(t, "continue", ErrorModeContinue.String())
}
