package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/vox/pkg/models"
)

func TestDefault_Loads(t *testing.T) {
	v := Default()
	assert.GreaterOrEqual(t, v.Len(), 50)
	assert.Contains(t, v.Verbs(ClassAutomation), "generate image")
	assert.Contains(t, v.Verbs(ClassHealth), "contraction timer")
	assert.Contains(t, v.Verbs(ClassEnhanced), "send email")
}

func TestVocabulary_Match(t *testing.T) {
	v := Default()

	tests := []struct {
		cmd      models.TaggedCommand
		wantVerb string
		wantOK   bool
	}{
		{"open chrome", "open", true},
		{"google search cats", "google search", true},
		{"google cats", "google", true},
		{"search wikipedia go", "search wikipedia", true},
		{"medication reminder iron tablets", "medication reminder", true},
		{"medication iron", "medication", true},
		{"close tab", "close tab", true},
		{"realtime who is the prime minister", "realtime", true},
		{"exit", "exit", true},
		{"opener", "", false},
		{"hello there", "", false},
		{"(query)", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmd), func(t *testing.T) {
			verb, ok := v.Match(tt.cmd)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantVerb, verb)
		})
	}
}

func TestVocabulary_Classify(t *testing.T) {
	v := Default()

	tests := []struct {
		cmd  models.TaggedCommand
		want Class
	}{
		{"open chrome", ClassAutomation},
		{"screenshot", ClassAutomation},
		{"general how are you", ClassControl},
		{"weather in london", ClassEnhanced},
		{"log symptom nausea", ClassHealth},
		{"volume up", ClassAuxiliary},
		{"unknown thing", ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmd), func(t *testing.T) {
			assert.Equal(t, tt.want, v.Classify(tt.cmd))
		})
	}
}

func TestVocabulary_IsConsidersShorterVerbs(t *testing.T) {
	v := Default()

	assert.Equal(t, ClassAuxiliary, v.Classify("close tab"))
	assert.True(t, v.Is("close tab", ClassAutomation))
	assert.False(t, v.Is("general open chrome", ClassAutomation))
}

func TestVocabulary_AnyIs(t *testing.T) {
	v := Default()
	d := models.Decision{"general what time is it", "open notepad"}

	assert.True(t, v.AnyIs(d, ClassAutomation))
	assert.False(t, v.AnyIs(d, ClassHealth))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "automation: [open"},
		{"empty verb", "automation:\n  - \"\"\n"},
		{"conflicting class", "automation:\n  - weather\nenhanced:\n  - weather\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_AlwaysHasControlVerbs(t *testing.T) {
	v, err := Parse([]byte("automation:\n  - open\n"))
	require.NoError(t, err)

	assert.True(t, v.Allowed("general hi"))
	assert.True(t, v.Allowed("realtime news"))
	assert.True(t, v.Allowed("exit"))
	assert.False(t, v.Allowed("close x"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("automation:\n  - launch\n"), 0644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ClassAutomation, v.Classify("launch rockets"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
