package weather

// openWeatherResponse mirrors the fields we use from the current-weather
// endpoint.
type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain map[string]float64 `json:"rain,omitempty"`
	Snow map[string]float64 `json:"snow,omitempty"`
}
