package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDiscardsByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := setupLogging("")
	if err != nil || f != nil {
		t.Fatalf("setupLogging(\"\") = %v, %v", f, err)
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	defer log.SetFlags(log.LstdFlags)

	path := filepath.Join(t.TempDir(), "raycaster.log")
	f, err := setupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	log.Println("test log message")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}
