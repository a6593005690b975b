package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSetting_CreatesThenUpdates(t *testing.T) {
	db, _ := newTestDB(t)

	res := db.UpdateSetting(SettingBusiness, map[string]any{"appointmentDuration": 30})
	require.True(t, res.Success)

	value := db.SettingValue(SettingBusiness)
	require.NotNil(t, value)
	assert.EqualValues(t, 30, value["appointmentDuration"])

	res = db.UpdateSetting(SettingBusiness, map[string]any{"appointmentDuration": 45})
	require.True(t, res.Success)

	value = db.SettingValue(SettingBusiness)
	assert.EqualValues(t, 45, value["appointmentDuration"])
	assert.Len(t, db.GetAll(Settings, nil), 1, "upsert must not duplicate the document")
}

func TestGetSetting_AbsentReturnsNil(t *testing.T) {
	db, _ := newTestDB(t)
	assert.Nil(t, db.GetSetting("nope"))
	assert.Nil(t, db.SettingValue("nope"))
}

func TestValidate_ReportsMissingEssentials(t *testing.T) {
	db, _ := newTestDB(t)

	report := db.Validate()
	assert.False(t, report.Valid)
	assert.Contains(t, report.Issues, "no admin user exists")
	assert.Contains(t, report.Issues, "clinic settings are missing")
}

func TestValidate_PassesOnHealthyStore(t *testing.T) {
	db, _ := newTestDB(t)

	require.True(t, db.Create(Users, Document{"username": "admin", "role": "admin"}).Success)
	require.True(t, db.UpdateSetting(SettingClinicInfo, map[string]any{"name": "ClinicPro"}).Success)

	report := db.Validate()
	assert.True(t, report.Valid, "issues: %v", report.Issues)
}
