package jobs

import (
	"log"

	"gorm.io/gorm"

	themeService "forum.GO/service/theme"
)

// DB is injected by the cron command before the scheduler starts.
var DB *gorm.DB

// ThemeCssBuildJob rebuilds stylesheets whose source changed since the last
// build.
func ThemeCssBuildJob(args ...string) {
	if DB == nil {
		log.Println("[cron] theme css build: no database configured")
		return
	}
	n, err := themeService.BuildPending(DB)
	if err != nil {
		log.Printf("[cron] theme css build failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[cron] theme css build: rebuilt %d stylesheet(s)", n)
	}
}
