package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the full root command against a temp database and returns
// stdout plus the command error.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "clinicpro.db")
}

func TestInit(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, db, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "store initialized")

	// A second init is a no-op.
	out, err = execute(t, db, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
}

func TestInitJSON(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, db, "init", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestInvalidFormat(t *testing.T) {
	db := tempDB(t)

	_, err := execute(t, db, "init", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestValidate(t *testing.T) {
	db := tempDB(t)

	// Before seeding the store fails validation.
	out, err := execute(t, db, "validate")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "no admin user exists")

	_, err = execute(t, db, "init")
	require.NoError(t, err)

	out, err = execute(t, db, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "store is valid")
}

func TestStats(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	out, err := execute(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "doctors: 2")

	out, err = execute(t, db, "stats", "--format", "json")
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestAvailabilityAndBook(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	// The seeded DOC001 works Sunday through Thursday 09:00-17:00.
	a, err := openApp(&RootOptions{DBPath: db})
	require.NoError(t, err)
	doctors := a.db.GetAll("doctors", nil)
	require.NotEmpty(t, doctors)
	doctorID := doctors[0].ID()
	a.Close()

	date := nextWorkingDate(t, db, doctorID)

	out, err := execute(t, db, "availability", doctorID, date, "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "slot is available")

	out, err = execute(t, db, "book",
		"--patient", "patient_walkin",
		"--doctor", doctorID,
		"--date", date,
		"--time", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "booked apt_")

	// The slot now conflicts.
	out, err = execute(t, db, "availability", doctorID, date, "10:15")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "conflicts")
}

func TestBook_MissingFlags(t *testing.T) {
	db := tempDB(t)

	_, err := execute(t, db, "book", "--patient", "p")
	require.Error(t, err)
}

func TestBackupLifecycle(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	out, err := execute(t, db, "backup", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "created backup")

	out, err = execute(t, db, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "backup_")

	_, err = execute(t, db, "backup", "restore", "backup_missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestExportImport(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, db, "init")
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")
	out, err := execute(t, db, "export", "--out", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported to")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.NotContains(t, payload, "backups")

	fresh := tempDB(t)
	_, err = execute(t, fresh, "import", exportPath)
	require.NoError(t, err)

	out, err = execute(t, fresh, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "doctors: 2")
}

func TestImport_Malformed(t *testing.T) {
	db := tempDB(t)
	badPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"patients": "nope"}`), 0o644))

	out, err := execute(t, db, "import", badPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "MALFORMED_IMPORT")
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "domain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "command")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError), "plain errors map to failure")
}

// nextWorkingDate finds the first upcoming date bookable for the doctor,
// so the test does not depend on which weekday it runs.
func nextWorkingDate(t *testing.T, dbPath, doctorID string) string {
	t.Helper()

	a, err := openApp(&RootOptions{DBPath: dbPath})
	require.NoError(t, err)
	defer a.Close()

	now := a.db.Clock().Now()
	for i := 1; i <= 14; i++ {
		date := now.AddDate(0, 0, i).UTC().Format("2006-01-02")
		if a.sched.CheckAvailability(doctorID, date, "10:00").Available {
			return date
		}
	}
	t.Fatal("no bookable date within two weeks")
	return ""
}
