package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/parleyhq/parley/internal/provider"
)

type weatherRequest struct {
	Location string `mapstructure:"location"`
}

func (r weatherRequest) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return errors.New("location is required")
	}
	return nil
}

type weatherReport struct {
	Location   string  `json:"location"`
	TempC      float64 `json:"temp_c"`
	Conditions string  `json:"conditions"`
	WindKph    float64 `json:"wind_kph"`
}

// Canned observations keyed by lowercase location name. The tool is a
// stand-in for a real weather backend.
var cannedWeather = map[string]weatherReport{
	"oslo":      {Location: "Oslo", TempC: 4.0, Conditions: "overcast", WindKph: 14.0},
	"london":    {Location: "London", TempC: 11.5, Conditions: "light rain", WindKph: 22.0},
	"tokyo":     {Location: "Tokyo", TempC: 18.0, Conditions: "clear", WindKph: 9.0},
	"san francisco": {
		Location: "San Francisco", TempC: 15.0, Conditions: "fog", WindKph: 19.0,
	},
}

// NewWeatherTool creates the get_weather tool serving canned data.
func NewWeatherTool() Tool {
	schema := &provider.ParameterSchema{
		Type: "object",
		Properties: map[string]provider.PropertySchema{
			"location": {
				Type:        "string",
				Description: "City name, e.g. \"Oslo\"",
			},
		},
		Required: []string{"location"},
	}

	return NewBaseAdapter(
		"get_weather",
		"Returns current weather for a city",
		schema,
		func(ctx context.Context, req weatherRequest) (weatherReport, error) {
			report, ok := cannedWeather[strings.ToLower(strings.TrimSpace(req.Location))]
			if !ok {
				return weatherReport{}, fmt.Errorf("no weather data for %q", req.Location)
			}
			return report, nil
		},
	)
}
