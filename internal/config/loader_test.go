package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/gradpredict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "assets/mtech_colleges.csv")
				convey.So(cfg.ResultDelayMS, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GRADPREDICT_ADDR", ":8080")
			_ = os.Setenv("GRADPREDICT_SCALER_PATH", "/models/scaler.yaml")
			_ = os.Setenv("GRADPREDICT_CATALOG_PATH", "/data/colleges.db")
			_ = os.Setenv("GRADPREDICT_RESULT_DELAY_MS", "3000")
			_ = os.Setenv("GRADPREDICT_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ScalerPath, convey.ShouldEqual, "/models/scaler.yaml")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "assets/graduate_adm_model.json")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "/data/colleges.db")
				convey.So(cfg.ResultDelayMS, convey.ShouldEqual, 3000)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# deployment overrides
addr: ":9090"
model_path: /srv/model.json
result_delay_ms: 500
log_level: debug
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GRADPREDICT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "/srv/model.json")
				convey.So(cfg.ResultDelayMS, convey.ShouldEqual, 500)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ScalerPath, convey.ShouldEqual, "assets/graduate_adm_scaler.json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
result_delay_ms: 500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GRADPREDICT_CONFIG", tmpFile)
			_ = os.Setenv("GRADPREDICT_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")      // env
				convey.So(cfg.ResultDelayMS, convey.ShouldEqual, 500) // file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GRADPREDICT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("GRADPREDICT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("GRADPREDICT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("GRADPREDICT_RESULT_DELAY_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative delay", func() {
			_ = os.Setenv("GRADPREDICT_RESULT_DELAY_MS", "-5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When reading config with an invalid server setting", func() {
			_ = os.Setenv("GRADPREDICT_WRITE_TIMEOUT_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Read(ctx)

			convey.Convey("Then Read returns it unvalidated", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.WriteTimeoutMS, convey.ShouldEqual, 0)
				convey.So(cfg.ValidatePaths(), convey.ShouldBeNil)
			})

			convey.Convey("And Load rejects it", func() {
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := config.Load(cctx)

			convey.Convey("Then loading is not attempted", func() {
				convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"GRADPREDICT_CONFIG",
		"GRADPREDICT_ADDR",
		"GRADPREDICT_SCALER_PATH",
		"GRADPREDICT_MODEL_PATH",
		"GRADPREDICT_CATALOG_PATH",
		"GRADPREDICT_RESULT_DELAY_MS",
		"GRADPREDICT_READ_TIMEOUT_MS",
		"GRADPREDICT_WRITE_TIMEOUT_MS",
		"GRADPREDICT_SHUTDOWN_TIMEOUT_MS",
		"GRADPREDICT_LOG_FORMAT",
		"GRADPREDICT_LOG_LEVEL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "gradpredict-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
