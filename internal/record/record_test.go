package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dshills/prtassess/internal/assessment"
)

var testQuestions = []string{"Q one?", "Q two?", "Q three?", "Q four?", "Q five?"}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func sampleRecord(t *testing.T, answers ...bool) Record {
	t.Helper()
	r, err := assessment.Evaluate(len(testQuestions), answers)
	if err != nil {
		t.Fatal(err)
	}
	return New(testQuestions, r, fixedNow)
}

func TestNew(t *testing.T) {
	rec := sampleRecord(t, true, true, true, false, false)

	if rec.Timestamp != "2025-03-14 09:26:53" {
		t.Errorf("timestamp = %q", rec.Timestamp)
	}
	wantAnswers := []string{"Yes", "Yes", "Yes", "No", "No"}
	for i, a := range wantAnswers {
		if rec.Answers[i] != a {
			t.Errorf("answers[%d] = %q, want %q", i, rec.Answers[i], a)
		}
	}
	if rec.Score != 3 || rec.ScorePercentage != 60 {
		t.Errorf("score = %d (%v%%)", rec.Score, rec.ScorePercentage)
	}
	if rec.SeverityLevel != "medium" {
		t.Errorf("severity = %q", rec.SeverityLevel)
	}
	if rec.Explanation != assessment.Explain(assessment.SeverityMedium) {
		t.Error("explanation mismatch")
	}
	if errs := Validate(&rec); len(errs) > 0 {
		t.Errorf("fresh record invalid: %v", errs)
	}
}

func TestMarshalFieldNames(t *testing.T) {
	rec := sampleRecord(t, true, true, true, true, true)
	data, err := Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"timestamp", "questions", "answers", "score", "score_percentage", "severity_level", "explanation"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if len(m) != 7 {
		t.Errorf("expected 7 keys, got %d", len(m))
	}
	if !strings.Contains(string(data), "\n    \"timestamp\"") {
		t.Error("expected four-space indentation")
	}
}

func TestValidateDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		path   string
	}{
		{"bad timestamp", func(r *Record) { r.Timestamp = "yesterday" }, "timestamp"},
		{"missing timestamp", func(r *Record) { r.Timestamp = "" }, "timestamp"},
		{"no questions", func(r *Record) { r.Questions = nil }, "questions"},
		{"answer count", func(r *Record) { r.Answers = r.Answers[:4] }, "answers"},
		{"bad answer", func(r *Record) { r.Answers[4] = "Maybe" }, "answers[4]"},
		{"score", func(r *Record) { r.Score = 5 }, "score"},
		{"percentage", func(r *Record) { r.ScorePercentage = 75 }, "score_percentage"},
		{"severity", func(r *Record) { r.SeverityLevel = "high" }, "severity_level"},
		{"unknown severity", func(r *Record) { r.SeverityLevel = "severe" }, "severity_level"},
		{"explanation", func(r *Record) { r.Explanation = "fine" }, "explanation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord(t, true, true, true, false, false)
			tt.mutate(&rec)
			errs := Validate(&rec)
			found := false
			for _, e := range errs {
				if e.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error at %q, got %v", tt.path, errs)
			}
		})
	}
}

func TestSaveCreatesDirAndUniqueNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	rc := NewRecorder(dir)
	rec := sampleRecord(t, false, false, false, false, false)

	p1, err := rc.Save(rec, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := rc.Save(rec, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Fatalf("same-second saves collided: %s", p1)
	}
	pattern := regexp.MustCompile(`^prt_assessment_20250314_092653_[0-9a-z]{6}\.json$`)
	for _, p := range []string{p1, p2} {
		if filepath.Dir(p) != dir {
			t.Errorf("saved outside dir: %s", p)
		}
		if !pattern.MatchString(filepath.Base(p)) {
			t.Errorf("unexpected file name %s", filepath.Base(p))
		}
	}
}

func TestNewRecorderDefaultDir(t *testing.T) {
	if NewRecorder("").Dir != DefaultDir {
		t.Error("expected default dir")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rc := NewRecorder(t.TempDir())
	for _, answers := range [][]bool{
		{true, true, true, true, true},
		{false, false, false, false, false},
		{true, true, false, false, false},
		{true, true, true, false, false},
		{true, true, true, true, false},
	} {
		rec := sampleRecord(t, answers...)
		path, err := rc.Save(rec, fixedNow)
		if err != nil {
			t.Fatal(err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(loaded.Hash, "sha256:") {
			t.Errorf("hash = %q", loaded.Hash)
		}
		got := loaded.Record
		if got.Score != rec.Score || got.ScorePercentage != rec.ScorePercentage ||
			got.SeverityLevel != rec.SeverityLevel || got.Explanation != rec.Explanation {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, rec)
		}
		if errs := Validate(&got); len(errs) > 0 {
			t.Errorf("loaded record invalid: %v", errs)
		}
		res := got.Result()
		for i, a := range answers {
			if res.Answers[i] != a {
				t.Errorf("answer %d = %v, want %v", i, res.Answers[i], a)
			}
		}
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing.json":    `{"timestamp": "2025-03-14 09:26:53"}`,
		"bad_answer.json": `{"timestamp":"x","questions":["q"],"answers":["Maybe"],"score":0,"score_percentage":0,"severity_level":"low","explanation":""}`,
		"bad_level.json":  `{"timestamp":"x","questions":["q"],"answers":["No"],"score":0,"score_percentage":0,"severity_level":"LOW","explanation":""}`,
		"fraction.json":   `{"timestamp":"x","questions":["q"],"answers":["No"],"score":0.5,"score_percentage":0,"severity_level":"low","explanation":""}`,
		"not_json.json":   `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			if err := os.WriteFile(p, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(p); err == nil {
				t.Error("expected load error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error")
	}
}

func TestWriteFileFailure(t *testing.T) {
	rec := sampleRecord(t, true, false, true, false, true)
	err := WriteFile(filepath.Join(t.TempDir(), "missing-dir", "out.json"), rec)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "record.WriteFile") {
		t.Errorf("error should be wrapped: %v", err)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"prt_assessment_20250101_120000_aaaaaa.json",
		"prt_assessment_20250301_080000_bbbbbb.json",
		"prt_assessment_20250201_235959_cccccc.json",
		"notes.txt",
		"other.json",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "prt_assessment_dir.json"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{names[1], names[2], names[0]}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, n := range want {
		if entries[i].Name != n {
			t.Errorf("[%d] = %s, want %s", i, entries[i].Name, n)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	entries, err := List(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
