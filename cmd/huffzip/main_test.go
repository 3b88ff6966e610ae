package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sherlock.txt")
	packed := filepath.Join(dir, "compressed.bin")
	unpacked := filepath.Join(dir, "decompressed.txt")

	text := strings.Repeat("You see, but you do not observe.\n", 20)
	if err := ioutil.WriteFile(src, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"compress", src, packed}, &stdout, &stderr); code != exitOK {
		t.Fatalf("compress: exit %d, stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "compress "+src) {
		t.Errorf("expected stats on stderr, got:\n%s", stderr.String())
	}
	if code := run([]string{"decompress", packed, unpacked}, &stdout, &stderr); code != exitOK {
		t.Fatalf("decompress: exit %d, stderr:\n%s", code, stderr.String())
	}

	actual, err := ioutil.ReadFile(unpacked)
	if err != nil {
		t.Fatal(err)
	}
	if string(actual) != text {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", text, actual)
	}

	stdout.Reset()
	if code := run([]string{"table", packed}, &stdout, &stderr); code != exitOK {
		t.Fatalf("table: exit %d, stderr:\n%s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "Decoder{\n") || !strings.Contains(out, "Decode(") || !strings.Contains(out, "symbols") {
		t.Errorf("wrong table output:\n%s", out)
	}
}

func TestRun_Usage(t *testing.T) {
	type testRow struct {
		name string
		args []string
		code int
	}

	testData := []testRow{
		{"no-args", nil, exitUsage},
		{"unknown", []string{"frobnicate"}, exitUsage},
		{"missing-dst", []string{"compress", "in.txt"}, exitUsage},
		{"extra-arg", []string{"table", "a", "b"}, exitUsage},
		{"bad-flag", []string{"-nope", "table", "a"}, exitUsage},
		{"help", []string{"-help"}, exitOK},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(row.args, &stdout, &stderr); code != row.code {
				t.Errorf("expected exit %d, got %d; stderr:\n%s", row.code, code, stderr.String())
			}
			if !strings.Contains(stdout.String()+stderr.String(), "Usage: huffzip") {
				t.Errorf("expected usage message, got:\n%s%s", stdout.String(), stderr.String())
			}
		})
	}
}

func TestRun_Failure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-debug", "compress", missing, filepath.Join(dir, "out.bin")}, &stdout, &stderr); code != exitError {
		t.Errorf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(stderr.String(), missing) {
		t.Errorf("expected error naming %s, got:\n%s", missing, stderr.String())
	}

	notCompressed := filepath.Join(dir, "plain.txt")
	if err := ioutil.WriteFile(notCompressed, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	stderr.Reset()
	if code := run([]string{"table", notCompressed}, &stdout, &stderr); code != exitError {
		t.Errorf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(stderr.String(), "corrupt header") {
		t.Errorf("expected corrupt header error, got:\n%s", stderr.String())
	}
}
