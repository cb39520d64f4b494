// internal/models/weather.go
package models

// WeatherReport is the normalized shape every weather provider reduces to.
type WeatherReport struct {
	City          string  `json:"city"`
	Temperature   float64 `json:"temperature"` // Celsius
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      int     `json:"humidity"`
	Precipitation bool    `json:"precipitation"`
	Condition     string  `json:"condition"`
	WindSpeed     float64 `json:"windSpeed"` // m/s
	Synthetic     bool    `json:"synthetic"`
}
