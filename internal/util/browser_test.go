package util

import (
	"errors"
	"testing"
)

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	url := "http://localhost:20262"
	win := browserCommands("windows", url)
	if len(win) != 2 || win[0][0] != "rundll32" || win[1][0] != "explorer" || win[0][2] != url {
		t.Fatalf("windows commands = %v", win)
	}
	if mac := browserCommands("darwin", url); len(mac) != 1 || mac[0][0] != "open" {
		t.Fatalf("darwin commands = %v", mac)
	}
	if linux := browserCommands("linux", url); linux[0][0] != "xdg-open" || len(linux) < 2 {
		t.Fatalf("linux commands = %v", linux)
	}
}

func TestOpenBrowser_FallsBackAndReportsFailure(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var tried []string
	startCommand = func(name string, args ...string) error {
		tried = append(tried, name)
		return errors.New("not found")
	}
	err := OpenBrowser("http://localhost")
	if !errors.Is(err, ErrNoBrowser) {
		t.Fatalf("err = %v", err)
	}
	if len(tried) < 1 {
		t.Fatalf("no command tried")
	}

	tried = nil
	startCommand = func(name string, args ...string) error {
		tried = append(tried, name)
		return nil
	}
	if err := OpenBrowser("http://localhost"); err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(tried) != 1 {
		t.Fatalf("tried %v, want first candidate only", tried)
	}
}
