package health

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/internal/state"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newJournal(t *testing.T, cfg JournalConfig) (*Journal, *state.DB, *clock) {
	t.Helper()
	db, err := state.OpenAndMigrate(filepath.Join(t.TempDir(), "vox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := &clock{now: time.Date(2026, 3, 14, 9, 26, 0, 0, time.Local)}
	cfg.Now = c.Now
	return NewJournal(db, cfg), db, c
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		command, utterance string
		action             Action
		details            string
	}{
		{"medication reminder iron", "", ActionMedicationReminder, "iron"},
		{"medication took folic acid", "", ActionTakeMedication, "folic acid"},
		{"medication iron", "remind me to take iron", ActionMedicationReminder, "iron"},
		{"medication", "what are my meds", ActionMedicationSchedule, ""},
		{"log symptom nausea", "", ActionLogSymptom, "nausea"},
		{"health emergency", "", ActionEmergency, ""},
		{"contraction timer", "", ActionContraction, ""},
		{"prenatal care exercise", "", ActionPregnancyCare, "exercise"},
		{"Call Doctor", "", ActionCallDoctor, ""},
		{"health summary", "", ActionSummary, ""},
		{"health dance", "", ActionUnknown, "health dance"},
	}
	for _, tt := range tests {
		action, details := ParseCommand(tt.command, tt.utterance)
		assert.Equal(t, tt.action, action, tt.command)
		assert.Equal(t, tt.details, details, tt.command)
	}
}

func TestUnavailable(t *testing.T) {
	answer, err := Unavailable{}.Handle(context.Background(), "health summary", "how am I doing")
	require.NoError(t, err)
	assert.Equal(t, UnavailableMessage, answer)
}

func TestJournal_MedicationFlow(t *testing.T) {
	j, db, _ := newJournal(t, JournalConfig{})
	ctx := context.Background()

	answer, err := j.Handle(ctx, "medication reminder prenatal vitamins", "")
	require.NoError(t, err)
	assert.Equal(t, "I've set up your medication reminder for prenatal vitamins. You'll be notified at 08:00, 20:00.", answer)

	answer, err = j.Handle(ctx, "take medication prenatal vitamins", "")
	require.NoError(t, err)
	assert.Equal(t, "Great! I've logged that you took your prenatal vitamins at 09:26.", answer)

	answer, err = j.Handle(ctx, "medication schedule", "")
	require.NoError(t, err)
	assert.Equal(t, "Your medication reminders: prenatal vitamins at 08:00, 20:00.", answer)

	doses, err := db.ListHealthRecords(ctx, state.HealthDose, 0)
	require.NoError(t, err)
	require.Len(t, doses, 1)
	assert.Equal(t, "prenatal vitamins", doses[0].Detail)
}

func TestJournal_EmptySchedule(t *testing.T) {
	j, _, _ := newJournal(t, JournalConfig{})
	answer, err := j.Handle(context.Background(), "medication schedule", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "no medication reminders")
}

func TestJournal_Symptom(t *testing.T) {
	j, db, _ := newJournal(t, JournalConfig{})
	ctx := context.Background()

	answer, err := j.Handle(ctx, "log symptom mild nausea", "")
	require.NoError(t, err)
	assert.Equal(t, "I've logged your symptom: mild nausea. Try eating small, frequent meals and staying hydrated. Ginger tea may help.", answer)

	records, err := db.ListHealthRecords(ctx, state.HealthSymptom, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestJournal_Emergency(t *testing.T) {
	j, db, _ := newJournal(t, JournalConfig{EmergencyNumber: "112"})
	ctx := context.Background()

	answer, err := j.Handle(ctx, "health emergency heavy bleeding", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "call 112")

	records, err := db.ListHealthRecords(ctx, state.HealthEmergency, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "heavy bleeding", records[0].Detail)
}

func TestJournal_Appointment(t *testing.T) {
	j, _, _ := newJournal(t, JournalConfig{})
	ctx := context.Background()

	answer, err := j.Handle(ctx, "doctor appointment", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "no appointments")

	answer, err = j.Handle(ctx, "prenatal appointment friday with dr lee", "")
	require.NoError(t, err)
	assert.Equal(t, "I've noted your appointment: friday with dr lee.", answer)

	answer, err = j.Handle(ctx, "doctor appointment", "")
	require.NoError(t, err)
	assert.Equal(t, "Your latest appointment: friday with dr lee.", answer)
}

func TestJournal_Contractions(t *testing.T) {
	j, _, c := newJournal(t, JournalConfig{})
	ctx := context.Background()

	answer, err := j.Handle(ctx, "contraction timer", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "Contraction timer started")

	c.now = c.now.Add(6 * time.Minute)
	answer, err = j.Handle(ctx, "contraction timer", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "6 minutes since the last one")

	c.now = c.now.Add(2 * time.Hour)
	answer, err = j.Handle(ctx, "contraction timer", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "Contraction timer started")
}

func TestJournal_Summary(t *testing.T) {
	j, _, _ := newJournal(t, JournalConfig{})
	ctx := context.Background()

	for _, cmd := range []string{
		"medication reminder iron",
		"take medication iron",
		"log symptom back pain",
	} {
		_, err := j.Handle(ctx, cmd, "")
		require.NoError(t, err)
	}

	answer, err := j.Handle(ctx, "health summary", "")
	require.NoError(t, err)
	assert.Equal(t, "You have 1 medication reminder and logged 1 dose today. Your most recent symptom was back pain. Remember to stay hydrated.", answer)
}

func TestJournal_CallDoctor(t *testing.T) {
	j, _, _ := newJournal(t, JournalConfig{})
	answer, err := j.Handle(context.Background(), "call doctor", "")
	require.NoError(t, err)
	assert.Contains(t, answer, "don't have your doctor's number")

	j, _, _ = newJournal(t, JournalConfig{DoctorName: "Lee", DoctorPhone: "555-0100"})
	answer, err = j.Handle(context.Background(), "call doctor", "")
	require.NoError(t, err)
	assert.Equal(t, "Please call Dr. Lee at 555-0100.", answer)
}

func TestJournal_Unknown(t *testing.T) {
	j, _, _ := newJournal(t, JournalConfig{})
	answer, err := j.Handle(context.Background(), "health dance", "")
	require.NoError(t, err)
	assert.Equal(t, "I'm not sure how to help with that healthcare request. Please try rephrasing.", answer)
}
