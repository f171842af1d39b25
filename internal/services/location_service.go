package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Location is the resolved place attached to a check-in.
type Location struct {
	PlaceID   *string
	City      *string
	State     *string
	Country   *string
	Latitude  *float64
	Longitude *float64
}

// LocationResolver is the geocoding boundary. The core never talks to a
// geocoding API directly.
type LocationResolver interface {
	ResolveByPlaceID(ctx context.Context, placeID string) (*Location, error)
	ResolveByCoordinates(ctx context.Context, latitude, longitude float64) (*Location, error)
}

type googleLocationService struct {
	http     *resty.Client
	token    string
	language string
}

func NewGoogleLocationService(token string) LocationResolver {
	return &googleLocationService{
		http: resty.New().
			SetBaseURL("https://maps.googleapis.com/maps/api").
			SetTimeout(10 * time.Second),
		token:    token,
		language: "en",
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID           string `json:"place_id"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *googleLocationService) ResolveByPlaceID(ctx context.Context, placeID string) (*Location, error) {
	return g.geocode(ctx, map[string]string{"place_id": placeID})
}

func (g *googleLocationService) ResolveByCoordinates(ctx context.Context, latitude, longitude float64) (*Location, error) {
	return g.geocode(ctx, map[string]string{"latlng": fmt.Sprintf("%f,%f", latitude, longitude)})
}

func (g *googleLocationService) geocode(ctx context.Context, params map[string]string) (*Location, error) {
	var out geocodeResponse
	resp, err := g.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", g.token).
		SetQueryParam("language", g.language).
		SetResult(&out).
		Get("/geocode/json")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocoding: http %d", resp.StatusCode())
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return nil, fmt.Errorf("geocoding: status %s", out.Status)
	}

	result := out.Results[0]
	location := &Location{}

	if result.PlaceID != "" {
		placeID := result.PlaceID
		location.PlaceID = &placeID
	}

	lat := result.Geometry.Location.Lat
	lng := result.Geometry.Location.Lng
	location.Latitude = &lat
	location.Longitude = &lng

	for _, component := range result.AddressComponents {
		name := component.LongName
		for _, t := range component.Types {
			switch t {
			case "locality", "postal_town":
				if location.City == nil {
					v := name
					location.City = &v
				}
			case "administrative_area_level_1":
				if location.State == nil {
					v := name
					location.State = &v
				}
			case "country":
				if location.Country == nil {
					v := name
					location.Country = &v
				}
			}
		}
	}

	return location, nil
}
