package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestUserOutputStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	restore := SetUserStreams(&out, &errOut)
	defer restore()

	UserInfo("building image '%s'", "cj-happy-turtle")
	UserSuccess("done")
	UserWarning("redirection unavailable")
	UserError("build failed")

	tests := []struct {
		stream *bytes.Buffer
		want   string
	}{
		{&out, "ℹ building image 'cj-happy-turtle'\n"},
		{&out, "✓ done\n"},
		{&errOut, "⚠ redirection unavailable\n"},
		{&errOut, "✗ build failed\n"},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.stream.String(), tt.want) {
			t.Errorf("missing %q; out=%q err=%q", tt.want, out.String(), errOut.String())
		}
	}

	if strings.Contains(out.String(), "⚠") || strings.Contains(out.String(), "✗") {
		t.Error("warnings or errors leaked into the out stream")
	}
	if strings.Contains(errOut.String(), "ℹ") || strings.Contains(errOut.String(), "✓") {
		t.Error("info or success leaked into the error stream")
	}
}

func TestSetUserStreamsRestore(t *testing.T) {
	var out bytes.Buffer
	restore := SetUserStreams(&out, nil)
	restore()

	var after bytes.Buffer
	restore = SetUserStreams(&after, nil)
	defer restore()

	UserInfo("hello")
	if out.Len() != 0 {
		t.Errorf("restored stream still received output: %q", out.String())
	}
	if !strings.Contains(after.String(), "hello") {
		t.Errorf("active stream missed output: %q", after.String())
	}
}

func TestSetUserStreamsNilKeepsStream(t *testing.T) {
	var out, errOut bytes.Buffer
	restore := SetUserStreams(&out, &errOut)
	defer restore()

	inner := SetUserStreams(nil, nil)
	defer inner()

	UserWarning("still routed")
	if !strings.Contains(errOut.String(), "still routed") {
		t.Errorf("nil writer replaced the error stream: %q", errOut.String())
	}
}
