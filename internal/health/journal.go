package health

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/internal/state"
)

// Action is a healthcare operation.
type Action string

const (
	ActionMedicationReminder Action = "medication_reminder"
	ActionTakeMedication     Action = "take_medication"
	ActionMedicationSchedule Action = "medication_schedule"
	ActionLogSymptom         Action = "log_symptom"
	ActionLabResults         Action = "check_lab_results"
	ActionEmergency          Action = "health_emergency"
	ActionAppointment        Action = "appointment"
	ActionPrescription       Action = "upload_prescription"
	ActionSummary            Action = "health_summary"
	ActionPregnancyCare      Action = "pregnancy_care"
	ActionCallDoctor         Action = "call_doctor"
	ActionContraction        Action = "contraction_timer"
	ActionUnknown            Action = ""
)

// verbActions maps health verbs to actions. "medication" alone is resolved
// from the utterance.
var verbActions = map[string]Action{
	"medication reminder":  ActionMedicationReminder,
	"take medication":      ActionTakeMedication,
	"medication schedule":  ActionMedicationSchedule,
	"medication":           ActionUnknown,
	"log symptom":          ActionLogSymptom,
	"check lab results":    ActionLabResults,
	"emergency alert":      ActionEmergency,
	"health emergency":     ActionEmergency,
	"prenatal appointment": ActionAppointment,
	"doctor appointment":   ActionAppointment,
	"upload prescription":  ActionPrescription,
	"health summary":       ActionSummary,
	"health check":         ActionSummary,
	"prenatal care":        ActionPregnancyCare,
	"pregnancy care":       ActionPregnancyCare,
	"call doctor":          ActionCallDoctor,
	"contraction timer":    ActionContraction,
}

// sortedVerbs lists verbActions keys longest first.
var sortedVerbs = func() []string {
	verbs := make([]string, 0, len(verbActions))
	for v := range verbActions {
		verbs = append(verbs, v)
	}
	sort.Slice(verbs, func(i, j int) bool {
		if len(verbs[i]) != len(verbs[j]) {
			return len(verbs[i]) > len(verbs[j])
		}
		return verbs[i] < verbs[j]
	})
	return verbs
}()

// defaultReminderTimes are used for spoken reminders without explicit times.
var defaultReminderTimes = []string{"08:00", "20:00"}

// contractionWindow bounds how far back the previous contraction counts.
const contractionWindow = time.Hour

// ParseCommand splits a health command into its action and details.
func ParseCommand(command, utterance string) (Action, string) {
	cmd := strings.ToLower(strings.TrimSpace(command))
	said := strings.ToLower(utterance)

	for _, verb := range sortedVerbs {
		if cmd != verb && !strings.HasPrefix(cmd, verb+" ") {
			continue
		}
		details := strings.TrimSpace(strings.TrimPrefix(cmd, verb))
		action := verbActions[verb]
		if action != ActionUnknown {
			return action, details
		}
		switch {
		case strings.Contains(details, "remind") || strings.Contains(said, "remind"):
			return ActionMedicationReminder, strings.TrimSpace(strings.TrimPrefix(details, "reminder"))
		case strings.Contains(details, "took") || strings.Contains(said, "took") || strings.Contains(said, "taken"):
			return ActionTakeMedication, strings.TrimSpace(strings.TrimPrefix(details, "took"))
		default:
			return ActionMedicationSchedule, details
		}
	}
	return ActionUnknown, cmd
}

// JournalConfig configures a Journal.
type JournalConfig struct {
	DoctorName      string
	DoctorPhone     string
	EmergencyNumber string
	Logger          logging.Logger

	// Now is overridable for tests.
	Now func() time.Time
}

// Journal is an Assistant backed by the health records in the state
// database.
type Journal struct {
	store state.HealthStore
	cfg   JournalConfig
	log   logging.Logger
}

// NewJournal creates a Journal over store.
func NewJournal(store state.HealthStore, cfg JournalConfig) *Journal {
	if cfg.EmergencyNumber == "" {
		cfg.EmergencyNumber = "911"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Journal{store: store, cfg: cfg, log: logging.OrNop(cfg.Logger)}
}

var _ Assistant = (*Journal)(nil)

// Handle performs the requested healthcare action.
func (j *Journal) Handle(ctx context.Context, command, utterance string) (string, error) {
	action, details := ParseCommand(command, utterance)
	j.log.Info("health", "handling command", logging.Fields{
		"action":  string(action),
		"details": details,
	})

	switch action {
	case ActionMedicationReminder:
		return j.medicationReminder(ctx, details)
	case ActionTakeMedication:
		return j.medicationTaken(ctx, details)
	case ActionMedicationSchedule:
		return j.medicationSchedule(ctx)
	case ActionLogSymptom:
		return j.symptom(ctx, details)
	case ActionLabResults:
		return "I don't have any lab results on file yet. Ask your clinic to share them and I can keep track of them for you.", nil
	case ActionEmergency:
		return j.emergency(ctx, details)
	case ActionAppointment:
		return j.appointment(ctx, details)
	case ActionPrescription:
		return "Tell me each medication on your prescription, for example: medication reminder prenatal vitamins. I'll set a reminder for each one.", nil
	case ActionSummary:
		return j.summary(ctx)
	case ActionPregnancyCare:
		return pregnancyInfo(details), nil
	case ActionCallDoctor:
		return j.callDoctor(), nil
	case ActionContraction:
		return j.contraction(ctx)
	}
	return "I'm not sure how to help with that healthcare request. Please try rephrasing.", nil
}

func (j *Journal) record(ctx context.Context, kind state.HealthKind, detail string) error {
	if _, err := j.store.AddHealthRecord(ctx, kind, detail, j.cfg.Now()); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	return nil
}

func (j *Journal) medicationReminder(ctx context.Context, medication string) (string, error) {
	if medication == "" {
		medication = "prenatal vitamins"
	}
	times := strings.Join(defaultReminderTimes, ", ")
	if err := j.record(ctx, state.HealthMedication, medication+" at "+times); err != nil {
		return "", err
	}
	return fmt.Sprintf("I've set up your medication reminder for %s. You'll be notified at %s.", medication, times), nil
}

func (j *Journal) medicationTaken(ctx context.Context, medication string) (string, error) {
	if medication == "" {
		medication = "medication"
	}
	if err := j.record(ctx, state.HealthDose, medication); err != nil {
		return "", err
	}
	return fmt.Sprintf("Great! I've logged that you took your %s at %s.", medication, j.cfg.Now().Format("15:04")), nil
}

func (j *Journal) medicationSchedule(ctx context.Context) (string, error) {
	meds, err := j.store.ListHealthRecords(ctx, state.HealthMedication, 0)
	if err != nil {
		return "", fmt.Errorf("list medications: %w", err)
	}
	if len(meds) == 0 {
		return "You have no medication reminders yet. Say 'medication reminder' followed by the medication name to add one.", nil
	}

	names := make([]string, 0, len(meds))
	for i := len(meds) - 1; i >= 0; i-- {
		names = append(names, meds[i].Detail)
	}
	return "Your medication reminders: " + strings.Join(names, "; ") + ".", nil
}

func symptomAdvice(symptom string) string {
	s := strings.ToLower(symptom)
	switch {
	case containsAny(s, "nausea", "nauseous", "morning sickness"):
		return "Try eating small, frequent meals and staying hydrated. Ginger tea may help."
	case containsAny(s, "contraction"):
		return "If contractions are regular and strong, contact your doctor."
	case containsAny(s, "headache", "head pain"):
		return "Stay hydrated and rest. If it is severe or persistent, contact your healthcare provider."
	case containsAny(s, "back pain", "backache"):
		return "Try gentle stretching or a warm compress."
	case containsAny(s, "chest pain", "bleeding", "can't breathe", "cannot breathe"):
		return "This could be serious. Please contact emergency services now."
	}
	return "Monitor how you feel and contact your doctor if it gets worse."
}

func (j *Journal) symptom(ctx context.Context, symptom string) (string, error) {
	if symptom == "" {
		symptom = "general discomfort"
	}
	if err := j.record(ctx, state.HealthSymptom, symptom); err != nil {
		return "", err
	}
	return fmt.Sprintf("I've logged your symptom: %s. %s", symptom, symptomAdvice(symptom)), nil
}

func (j *Journal) emergency(ctx context.Context, details string) (string, error) {
	if err := j.record(ctx, state.HealthEmergency, details); err != nil {
		j.log.Error("health", "failed to record emergency", logging.Fields{"error": err})
	}
	return fmt.Sprintf("This sounds urgent. If this is a life-threatening emergency, call %s right away and contact your emergency contact.", j.cfg.EmergencyNumber), nil
}

func (j *Journal) appointment(ctx context.Context, details string) (string, error) {
	if details == "" {
		appts, err := j.store.ListHealthRecords(ctx, state.HealthAppointment, 1)
		if err != nil {
			return "", fmt.Errorf("list appointments: %w", err)
		}
		if len(appts) == 0 {
			return "You have no appointments recorded. Tell me the date and doctor to add one.", nil
		}
		return "Your latest appointment: " + appts[0].Detail + ".", nil
	}

	if err := j.record(ctx, state.HealthAppointment, details); err != nil {
		return "", err
	}
	return "I've noted your appointment: " + details + ".", nil
}

func (j *Journal) summary(ctx context.Context) (string, error) {
	records, err := j.store.ListHealthRecords(ctx, "", 0)
	if err != nil {
		return "", fmt.Errorf("list health records: %w", err)
	}

	today := j.cfg.Now()
	var meds, dosesToday, symptoms int
	var lastSymptom string
	for _, r := range records {
		switch r.Kind {
		case state.HealthMedication:
			meds++
		case state.HealthDose:
			if sameDay(r.CreatedAt, today) {
				dosesToday++
			}
		case state.HealthSymptom:
			if symptoms == 0 {
				lastSymptom = r.Detail
			}
			symptoms++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d medication reminder%s and logged %d dose%s today.",
		meds, plural(meds), dosesToday, plural(dosesToday))
	if symptoms > 0 {
		fmt.Fprintf(&b, " Your most recent symptom was %s.", lastSymptom)
	}
	b.WriteString(" Remember to stay hydrated.")
	return b.String(), nil
}

func (j *Journal) callDoctor() string {
	if j.cfg.DoctorPhone == "" {
		return "I don't have your doctor's number yet. Add it to the health settings and ask me again."
	}
	name := "your doctor"
	if j.cfg.DoctorName != "" {
		name = "Dr. " + j.cfg.DoctorName
	}
	return fmt.Sprintf("Please call %s at %s.", name, j.cfg.DoctorPhone)
}

func (j *Journal) contraction(ctx context.Context) (string, error) {
	previous, err := j.store.ListHealthRecords(ctx, state.HealthContraction, 1)
	if err != nil {
		return "", fmt.Errorf("list contractions: %w", err)
	}
	now := j.cfg.Now()
	if err := j.record(ctx, state.HealthContraction, now.Format("15:04:05")); err != nil {
		return "", err
	}

	if len(previous) == 1 {
		gap := now.Sub(previous[0].CreatedAt)
		if gap > 0 && gap <= contractionWindow {
			minutes := int(gap.Round(time.Minute) / time.Minute)
			return fmt.Sprintf("Contraction logged, %d minute%s since the last one. If they are regular and under five minutes apart, contact your doctor.",
				minutes, plural(minutes)), nil
		}
	}
	return "Contraction timer started. Say 'contraction timer' again at the start of each contraction.", nil
}

func pregnancyInfo(topic string) string {
	switch {
	case containsAny(topic, "nutrition", "diet", "food"):
		return "Focus on folate-rich foods, lean proteins and dairy. Avoid raw fish and limit caffeine."
	case containsAny(topic, "exercise", "workout"):
		return "Gentle exercise like walking, swimming and prenatal yoga is great. Avoid contact sports."
	case containsAny(topic, "development", "baby"):
		return "Your baby's organs develop rapidly during pregnancy. Your doctor can tell you what to expect this week."
	case containsAny(topic, "trimester"):
		return "The second trimester is often the most comfortable, and energy levels typically improve."
	case containsAny(topic, "changes", "body"):
		return "Body changes like weight gain and skin changes are normal, and everyone's experience is different."
	}
	return "I can help with nutrition, exercise, baby development and body changes. What would you like to know?"
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
