package actuator

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/corax26/servoscheduler/adapter/cli/client"
	"github.com/corax26/servoscheduler/adapter/httpapi"
	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/corax26/servoscheduler/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time                         { return c.t }
func (c fixedClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }

type noopSink struct{}

func (noopSink) SetState(schedule.ActuatorState) {}

func setupTestCLI(t *testing.T) server.ActuatorID {
	t.Helper()
	clock := fixedClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	facade := server.New(clock, nil)
	id, err := facade.RegisterActuator(schedule.ActuatorInfo{Name: "porch-light", Type: schedule.ToggleType}, schedule.BoolState(false), noopSink{})
	require.NoError(t, err)

	httpSrv := httpapi.NewServer(httpapi.DefaultServerConfig(), facade, nil)
	srv := httptest.NewServer(httpSrv.Handler())
	t.Cleanup(func() {
		srv.Close()
		facade.Shutdown(context.Background())
	})

	cli.SetClient(client.New(srv.URL))
	return id
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestListCmd_PrintsRegisteredActuators(t *testing.T) {
	id := setupTestCLI(t)

	out := captureStdout(t, func() {
		require.NoError(t, ListCmd.RunE(ListCmd, nil))
	})

	assert.Contains(t, out, strconv.Itoa(int(id))+"\tporch-light")
}

func TestDefaultStateSetThenGet(t *testing.T) {
	setupTestCLI(t)
	args := []string{"0"}

	setBool = true
	setIsFloat = false
	require.NoError(t, defaultStateSetCmd.RunE(defaultStateSetCmd, args))

	out := captureStdout(t, func() {
		require.NoError(t, defaultStateGetCmd.RunE(defaultStateGetCmd, args))
	})
	assert.Contains(t, out, "true")
}

func TestDefaultStateGet_UnknownActuator(t *testing.T) {
	setupTestCLI(t)
	err := defaultStateGetCmd.RunE(defaultStateGetCmd, []string{"999"})
	require.Error(t, err)
}
