package config

// Default job schedules, overridable through the environment.
func OzonSyncSchedule() string {
	return GetEnv("CRON_OZON_SYNC", "0 3 * * *")
}

func CacheWarmSchedule() string {
	return GetEnv("CRON_CACHE_WARM", "@every 10m")
}
