package config

import (
	"forum.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"themecssbuildjob": {Schedule: "@every 5m", Job: jobs.ThemeCssBuildJob},
	// Add more jobs here
}
