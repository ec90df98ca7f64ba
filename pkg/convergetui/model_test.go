package convergetui_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/gradlepin/pkg/converge"
	"github.com/macropower/gradlepin/pkg/convergetui"
)

func TestModel_Success(t *testing.T) {
	t.Parallel()

	m := convergetui.NewModel("converging")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(converge.EventSetTotal(2))
	tm.Send(converge.EventConverging("android:app"))
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Converging android:app")) &&
				bytes.Contains(bts, []byte("0/2"))
		},
	)

	tm.Send(converge.EventConverged{Key: "android:app", Status: converge.StatusPatched})
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("✓ android:app patched"))
		},
	)

	tm.Send(converge.EventConverging("android:wrapper"))
	tm.Send(converge.EventConverged{Key: "android:wrapper", Status: converge.StatusUnchanged})
	tm.Send(converge.EventDone{})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Done! 1 patched, 1 unchanged.")
}

func TestModel_FileError(t *testing.T) {
	t.Parallel()

	m := convergetui.NewModel("converging")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(converge.EventSetTotal(1))
	tm.Send(converge.EventConverging("android:manifest"))
	tm.Send(converge.EventConverged{
		Key:    "android:manifest",
		Status: converge.StatusFailed,
		Err:    errors.New("no application"),
	})
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("✗ android:manifest: no application"))
		},
	)

	tm.Send(converge.EventDone{})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Done! 1 failed.")
}

func TestModel_RunError(t *testing.T) {
	t.Parallel()

	m := convergetui.NewModel("converging")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(converge.EventDone{Err: errors.New("nothing to do")})

	out, err := io.ReadAll(tm.FinalOutput(t, teatest.WithFinalTimeout(10*time.Second)))
	require.NoError(t, err)
	assert.Contains(t, string(out), "nothing to do")
}

func TestModel_WriteLog(t *testing.T) {
	t.Parallel()

	m := convergetui.NewModel("checking")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(convergetui.TeaMsgWriteLog("WARN unbalanced braces\n"))
	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte("WARN unbalanced braces"))
		},
	)

	tm.Send(converge.EventDone{})
	tm.WaitFinished(t, teatest.WithFinalTimeout(10*time.Second))
}

func TestModel_CtrlC(t *testing.T) {
	t.Parallel()

	m := convergetui.NewModel("converging")
	tm := teatest.NewTestModel(
		t, m,
		teatest.WithInitialTermSize(300, 100),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(10*time.Second))
}
