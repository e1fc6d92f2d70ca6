package timeslot

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corax26/servoscheduler/adapter/cli"
	"github.com/corax26/servoscheduler/adapter/cli/client"
	"github.com/corax26/servoscheduler/adapter/httpapi"
	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/corax26/servoscheduler/internal/server"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time                         { return c.t }
func (c fixedClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }

type noopSink struct{}

func (noopSink) SetState(schedule.ActuatorState) {}

func setupTestCLI(t *testing.T) {
	t.Helper()
	clock := fixedClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	facade := server.New(clock, nil)
	_, err := facade.RegisterActuator(schedule.ActuatorInfo{Name: "porch-light", Type: schedule.ToggleType}, schedule.BoolState(false), noopSink{})
	require.NoError(t, err)

	httpSrv := httpapi.NewServer(httpapi.DefaultServerConfig(), facade, nil)
	srv := httptest.NewServer(httpSrv.Handler())
	t.Cleanup(func() {
		srv.Close()
		facade.Shutdown(context.Background())
	})

	cli.SetClient(client.New(srv.URL))
}

func resetAddFlags() {
	addStart, addEnd, addDateStart, addDateEnd = "09:00", "17:00", "", ""
	addDays = "MTWTFSS"
	addBool, addValue, addIsFloat, addEnabled = true, 0, false, true
}

func TestAddCmd_ThenListCmd(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()

	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	var slots map[string]any
	require.NoError(t, cli.GetClient().Get("/v1/actuators/0/timeslots", &slots))
	require.Len(t, slots, 1)
}

func TestAddCmd_RejectsOverlap(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	addStart, addEnd = "10:00", "18:00"
	err := addCmd.RunE(addCmd, []string{"0"})
	require.Error(t, err)
}

func TestRemoveCmd(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	require.NoError(t, removeCmd.RunE(removeCmd, []string{"0", "0"}))

	var slots map[string]any
	require.NoError(t, cli.GetClient().Get("/v1/actuators/0/timeslots", &slots))
	require.Len(t, slots, 0)
}

func TestEnableDisableCmd(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	require.NoError(t, disableCmd.RunE(disableCmd, []string{"0", "0"}))
	require.NoError(t, enableCmd.RunE(enableCmd, []string{"0", "0"}))
}

func TestSetTimeCmd_PatchesOnlyGivenFields(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	patchStart, patchEnd, patchDateStart, patchDateEnd, patchDays = "", "18:00", "", "", ""
	require.NoError(t, setTimeCmd.RunE(setTimeCmd, []string{"0", "0"}))

	var slots map[string]json.RawMessage
	require.NoError(t, cli.GetClient().Get("/v1/actuators/0/timeslots", &slots))
	require.Contains(t, string(slots["0"]), "18")
}

func TestSetStateCmd(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	stateBool, stateValue, stateIsFloat = false, 0, false
	require.NoError(t, setStateCmd.RunE(setStateCmd, []string{"0", "0"}))
}

func TestAddOverrideThenRemoveOverride(t *testing.T) {
	setupTestCLI(t)
	resetAddFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"0"}))

	overrideStart, overrideEnd = "10:00", "12:00"
	overrideDateStart, overrideDateEnd = "25/12/2024", "25/12/2024"
	overrideDays = "MTWTFSS"
	require.NoError(t, addOverrideCmd.RunE(addOverrideCmd, []string{"0", "0"}))

	require.NoError(t, removeOverrideCmd.RunE(removeOverrideCmd, []string{"0", "0", "0"}))
}
