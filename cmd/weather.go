package main

import (
	"context"
	"fmt"

	"github.com/jii-iin/weathermix/internal/shared"
	"github.com/jii-iin/weathermix/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WeatherShow looks up and prints current conditions for a city.
func (r *Runner) WeatherShow(ctx context.Context, cmd *cli.Command) error {
	city := cmd.StringArg("city")
	if city == "" {
		city = "Seoul"
	}
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.weather == nil {
		return fmt.Errorf("%w: OpenWeather API key not configured", shared.ErrMissingConfig)
	}

	r.logger.Infof("looking up weather for %v", city)

	reading, status := r.weather.Current(ctx, city)
	if reading == nil {
		r.logger.Debug("weather lookup failed", "city", city, "status", status)
		return r.writePlainln("날씨 정보를 찾을 수 없습니다.")
	}

	if useJSON {
		return r.writeJSON(reading, pretty)
	}

	r.writePlain("%s 현재 날씨: %s / %.1f°C\n", reading.City, reading.Description, reading.TempC)
	r.writePlain("Mood: %s\n", tasks.MoodKeyword(reading.Condition))

	return nil
}
