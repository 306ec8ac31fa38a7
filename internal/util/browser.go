package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// ErrNoBrowser 所有候选命令都无法启动
var ErrNoBrowser = errors.New("no browser launcher available")

// browserCommands 按优先级返回打开 url 的候选命令
//
// Windows 先用 rundll32 调用 url.dll（Windows 7 上比 cmd /c start 稳定），再退回 explorer。
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		cmds := [][]string{{"xdg-open", url}}
		for _, b := range []string{"sensible-browser", "google-chrome", "firefox", "chromium-browser"} {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
}

// startCommand 启动进程但不等待退出
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenBrowser 依次尝试候选命令，直到有一个启动成功
func OpenBrowser(url string) error {
	err := ErrNoBrowser
	for _, c := range browserCommands(runtime.GOOS, url) {
		if err = startCommand(c[0], c[1:]...); err == nil {
			return nil
		}
	}
	return errors.Join(ErrNoBrowser, err)
}
