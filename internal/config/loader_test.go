package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sprinflow/indices/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"INDICES_CONFIG",
		"INDICES_ADDR",
		"INDICES_LOG_LEVEL",
		"INDICES_BENCHMARK_FILE",
		"INDICES_MIN_CALIBRATION_DAYS",
		"INDICES_RECENT_WINDOW_DAYS",
		"INDICES_PEAK_WINDOW_DAYS",
		"INDICES_CACHE_MAX_ENTRIES",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MinCalibrationDays, convey.ShouldEqual, 7)
				convey.So(cfg.RecentWindowDays, convey.ShouldEqual, 30)
				convey.So(cfg.PeakWindowDays, convey.ShouldEqual, 90)
				convey.So(cfg.CacheMaxEntries, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("INDICES_ADDR", ":8080")
			_ = os.Setenv("INDICES_LOG_LEVEL", "debug")
			_ = os.Setenv("INDICES_MIN_CALIBRATION_DAYS", "14")
			_ = os.Setenv("INDICES_CACHE_MAX_ENTRIES", "500")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MinCalibrationDays, convey.ShouldEqual, 14)
				convey.So(cfg.CacheMaxEntries, convey.ShouldEqual, 500)
				convey.So(cfg.RecentWindowDays, convey.ShouldEqual, 30)
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			clearConfigEnvVars()
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			doc := "addr: \":7070\"\nmin_calibration_days: 10\npeak_window_days: 120\n"
			convey.So(os.WriteFile(path, []byte(doc), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("INDICES_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values layer over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MinCalibrationDays, convey.ShouldEqual, 10)
				convey.So(cfg.PeakWindowDays, convey.ShouldEqual, 120)
				convey.So(cfg.RecentWindowDays, convey.ShouldEqual, 30)
			})

			convey.Convey("And env vars still win over the file", func() {
				_ = os.Setenv("INDICES_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config is invalid", func() {
			clearConfigEnvVars()

			convey.Convey("Then an empty addr is rejected", func() {
				_ = os.Setenv("INDICES_ADDR", "")
				defer clearConfigEnvVars()
				// koanf treats the empty string as a set value.
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then a zero calibration threshold is rejected", func() {
				_ = os.Setenv("INDICES_MIN_CALIBRATION_DAYS", "0")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then a peak window shorter than the recent window is rejected", func() {
				_ = os.Setenv("INDICES_PEAK_WINDOW_DAYS", "10")
				defer clearConfigEnvVars()
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
