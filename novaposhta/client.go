package novaposhta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.novaposhta.ua/v2.0/json/"

// Client talks to the Nova Poshta JSON API. Every call is a POST of the
// same envelope shape; only modelName/calledMethod/methodProperties vary.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type request struct {
	APIKey           string      `json:"apiKey,omitempty"`
	ModelName        string      `json:"modelName"`
	CalledMethod     string      `json:"calledMethod"`
	MethodProperties interface{} `json:"methodProperties"`
}

type response struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Errors  []string          `json:"errors"`
}

// City is a settlement returned by Address/getCities.
type City struct {
	Ref         string `json:"Ref"`
	Description string `json:"Description"`
}

// Warehouse is a pickup point returned by Address/getWarehouses.
type Warehouse struct {
	Ref         string `json:"Ref"`
	Description string `json:"Description"`
	CityRef     string `json:"CityRef"`
	Number      string `json:"Number"`
}

func (c *Client) call(modelName, calledMethod string, props interface{}) (*response, error) {
	body, err := json.Marshal(request{
		APIKey:           c.apiKey,
		ModelName:        modelName,
		CalledMethod:     calledMethod,
		MethodProperties: props,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nova poshta returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("nova poshta call %s/%s failed: %v", modelName, calledMethod, out.Errors)
	}
	return &out, nil
}

// GetCities searches settlements by name prefix. An empty search returns
// the full city list, which the upstream API pages internally.
func (c *Client) GetCities(search string) ([]City, error) {
	props := map[string]string{}
	if search != "" {
		props["FindByString"] = search
	}

	resp, err := c.call("Address", "getCities", props)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var city City
		if err := json.Unmarshal(raw, &city); err != nil {
			continue
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// GetWarehouses lists pickup points for a city ref.
func (c *Client) GetWarehouses(cityRef string) ([]Warehouse, error) {
	resp, err := c.call("Address", "getWarehouses", map[string]string{
		"CityRef": cityRef,
	})
	if err != nil {
		return nil, err
	}

	warehouses := make([]Warehouse, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var wh Warehouse
		if err := json.Unmarshal(raw, &wh); err != nil {
			continue
		}
		warehouses = append(warehouses, wh)
	}
	return warehouses, nil
}
