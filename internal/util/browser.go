package util

import (
	"io"
	"os/exec"
	"runtime"

	"github.com/pkg/browser"
)

// OpenBrowser 打开默认浏览器
func OpenBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// OpenBrowserWithFallback 带降级方案的浏览器打开
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		// Windows 7 上 url.dll 比 cmd /c start 稳定
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "linux":
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			if err := exec.Command(b, url).Start(); err == nil {
				return nil
			}
		}
	}

	return err
}
