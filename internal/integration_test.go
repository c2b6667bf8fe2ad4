package internal

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/prtassess/internal/console"
	"github.com/dshills/prtassess/internal/questions"
	"github.com/dshills/prtassess/internal/record"
	"github.com/dshills/prtassess/internal/session"
	"github.com/dshills/prtassess/internal/web"
)

var fixedNow = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) }

// runConsole drives the console flow and returns the written record.
func runConsole(t *testing.T, answers []string) record.Record {
	t.Helper()
	dir := t.TempDir()
	recPath := filepath.Join(dir, console.DefaultRecordPath)
	_, err := console.Run(context.Background(), console.Options{
		In:         strings.NewReader(strings.Join(answers, "\n") + "\n"),
		Out:        &strings.Builder{},
		Set:        questions.MustLoadBuiltin(questions.Console),
		ImagePath:  filepath.Join(dir, console.DefaultImagePath),
		RecordPath: recPath,
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("console run: %v", err)
	}
	l, err := record.Load(recPath)
	if err != nil {
		t.Fatalf("load console record: %v", err)
	}
	return l.Record
}

// runWeb drives the web flow over HTTP and returns the saved record.
func runWeb(t *testing.T, answers []string) record.Record {
	t.Helper()
	dir := t.TempDir()
	store, err := session.OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s, err := web.New(web.Config{
		Set:      questions.MustLoadBuiltin(questions.Web),
		Recorder: record.NewRecorder(dir),
		Sessions: store,
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &http.Client{Jar: jar}
	resp, err := c.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	for _, a := range answers {
		resp, err := c.PostForm(srv.URL+"/question", url.Values{"answer": {a}})
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("answer %q: status %d", a, resp.StatusCode)
		}
	}

	entries, err := record.List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 web record, got %d", len(entries))
	}
	l, err := record.Load(entries[0].Path)
	if err != nil {
		t.Fatalf("load web record: %v", err)
	}
	return l.Record
}

func TestConsoleAndWebAgree(t *testing.T) {
	runs := [][]string{
		{"yes", "yes", "yes", "yes", "yes"},
		{"no", "no", "no", "no", "no"},
		{"yes", "yes", "no", "no", "no"},
		{"yes", "yes", "yes", "no", "no"},
		{"yes", "yes", "yes", "yes", "no"},
	}
	for _, answers := range runs {
		t.Run(strings.Join(answers, ","), func(t *testing.T) {
			c := runConsole(t, answers)
			w := runWeb(t, answers)

			for _, rec := range []record.Record{c, w} {
				for _, e := range record.Validate(&rec) {
					t.Errorf("validation error: %s", e)
				}
			}
			if c.Score != w.Score || c.ScorePercentage != w.ScorePercentage {
				t.Errorf("score: console %d (%v%%), web %d (%v%%)", c.Score, c.ScorePercentage, w.Score, w.ScorePercentage)
			}
			if c.SeverityLevel != w.SeverityLevel || c.Explanation != w.Explanation {
				t.Errorf("severity: console %s, web %s", c.SeverityLevel, w.SeverityLevel)
			}
			if c.Timestamp != w.Timestamp {
				t.Errorf("timestamp: console %s, web %s", c.Timestamp, w.Timestamp)
			}
			if strings.Join(c.Answers, ",") != strings.Join(w.Answers, ",") {
				t.Errorf("answers: console %v, web %v", c.Answers, w.Answers)
			}
			if c.Questions[0] == w.Questions[0] {
				t.Error("expected the console and web question sets to differ")
			}
		})
	}
}
