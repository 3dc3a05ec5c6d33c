package logflags

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestHeaderDefaultsToAnon(t *testing.T) {
	got := Header("i", 123, 0xabc, "")
	if !strings.Contains(got, "(anon)") {
		t.Fatalf("Header with no name = %q; want it to contain \"(anon)\"", got)
	}
}

func TestHeaderKeepsSuppliedName(t *testing.T) {
	got := Header("i", 123, 0xabc, "worker")
	if !strings.Contains(got, "(worker)") {
		t.Fatalf("Header with a name = %q; want it to contain \"(worker)\"", got)
	}
}

func TestSeverityTagMapping(t *testing.T) {
	cases := []struct {
		level logrus.Level
		want  string
	}{
		{logrus.DebugLevel, "i"},
		{logrus.InfoLevel, "i"},
		{logrus.WarnLevel, "w"},
		{logrus.ErrorLevel, "e"},
		{logrus.FatalLevel, "e"},
	}
	for _, c := range cases {
		if got := severityTag(c.level); got != c.want {
			t.Errorf("severityTag(%v) = %q; want %q", c.level, got, c.want)
		}
	}
}

func TestHeaderFormatterIncludesMessageAndFields(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())
	entry.Message = "module loaded"
	entry.Data = logrus.Fields{"layer": "namespace"}
	entry.Level = logrus.InfoLevel

	out, err := headerFormatter{}.Format(entry)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "module loaded") {
		t.Fatalf("formatted line %q missing the log message", got)
	}
	if !strings.Contains(got, "layer=namespace") {
		t.Fatalf("formatted line %q missing the layer field", got)
	}
	if !strings.HasSuffix(got, "\r\n") {
		t.Fatalf("formatted line %q does not end in CRLF", got)
	}
}
