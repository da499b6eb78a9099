package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jii-iin/weathermix/internal/models"
	"github.com/jii-iin/weathermix/internal/shared"
	tu "github.com/jii-iin/weathermix/internal/testing"
	"github.com/urfave/cli/v3"
)

func testApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "weathermix",
		Commands: r.register(),
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			weather := &tu.MockWeather{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Weather: weather,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config")
			}
			if runner.logger == nil {
				t.Error("expected default logger")
			}
			if runner.output == nil {
				t.Error("expected default output")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact and pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"k": "v"}, false); err != nil {
				t.Fatalf("writeJSON() error: %v", err)
			}
			if output.String() != "{\"k\":\"v\"}\n" {
				t.Errorf("compact output = %q", output.String())
			}

			output.Reset()
			if err := runner.writeJSON(map[string]string{"k": "v"}, true); err != nil {
				t.Fatalf("writeJSON() error: %v", err)
			}
			if !strings.Contains(output.String(), "\n  ") {
				t.Errorf("pretty output = %q", output.String())
			}
		})

		t.Run("write failure surfaces", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writeJSON("data", false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("unmarshalable data errors", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("count: %d\n", 3); err != nil {
			t.Fatalf("writePlain() error: %v", err)
		}
		if output.String() != "count: 3\n" {
			t.Errorf("output = %q", output.String())
		}

		if err := NewRunner(RunnerOpts{Output: &tu.FWriter{}}).writePlain("x"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestWeatherShow(t *testing.T) {
	ctx := context.Background()

	t.Run("prints the weather banner", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output: output,
			Weather: &tu.MockWeather{
				Reading: &models.WeatherReading{
					City:        "Seoul",
					Condition:   "Rain",
					Description: "약한 비",
					TempC:       18.4,
				},
				Status: 200,
			},
		})

		if err := testApp(runner).Run(ctx, []string{"weathermix", "weather", "Seoul"}); err != nil {
			t.Fatalf("weather command error: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Seoul 현재 날씨: 약한 비 / 18.4°C") {
			t.Errorf("output = %q", out)
		}
		if !strings.Contains(out, "Mood: lofi rainy chill") {
			t.Errorf("output missing mood: %q", out)
		}
	})

	t.Run("unknown city prints the not-found message", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output:  output,
			Weather: &tu.MockWeather{Reading: nil, Status: 404},
		})

		if err := testApp(runner).Run(ctx, []string{"weathermix", "weather", "Atlantis"}); err != nil {
			t.Fatalf("weather command error: %v", err)
		}
		if !strings.Contains(output.String(), "날씨 정보를 찾을 수 없습니다.") {
			t.Errorf("output = %q", output.String())
		}
	})

	t.Run("missing weather provider errors", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := testApp(runner).Run(ctx, []string{"weathermix", "weather", "Seoul"})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("error = %v, want ErrMissingConfig", err)
		}
	})
}

func TestMixRunValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid mode is rejected", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output:  &bytes.Buffer{},
			Weather: &tu.MockWeather{},
		})

		err := testApp(runner).Run(ctx, []string{"weathermix", "run", "--mode", "loud"})
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("error = %v, want ErrInvalidFlag", err)
		}
	})

	t.Run("missing weather provider errors", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := testApp(runner).Run(ctx, []string{"weathermix", "run"})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("error = %v, want ErrMissingConfig", err)
		}
	})

	t.Run("missing spotify credentials error", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output:  &bytes.Buffer{},
			Weather: &tu.MockWeather{},
		})

		err := testApp(runner).Run(ctx, []string{"weathermix", "run"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("error = %v, want ErrMissingCredentials", err)
		}
	})
}
