// C:\Users\wasab\OneDrive\デスクトップ\REGI\kiosk.go
package main

import (
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// launchKiosk はレジ画面をChromeのアプリモード (タブやURLバーの無い
// 単独ウィンドウ) で開き、閉じられるまで見届けます。
// 起動できない環境では通常のブラウザ起動にフォールバックします。
func launchKiosk(url string) {
	err := rod.Try(func() {
		// Leakless(false) でセキュリティソフト対策
		u := launcher.New().
			Headless(false).
			Leakless(false).
			Set("app", url).
			MustLaunch()

		browser := rod.New().ControlURL(u).MustConnect()
		defer func() { _ = browser.Close() }()

		log.Println("Kiosk window opened.")

		// ウィンドウが閉じられる (ページが無くなる) まで巡回する
		for {
			time.Sleep(2 * time.Second)
			pages, err := browser.Pages()
			if err != nil || len(pages) == 0 {
				log.Println("Kiosk window closed.")
				return
			}
		}
	})
	if err != nil {
		log.Printf("WARN: kiosk launch failed, falling back to default browser: %v", err)
		openBrowser(url)
	}
}
