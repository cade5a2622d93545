package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Eero is one mesh node.
type Eero struct {
	ID                    string
	Serial                string
	Name                  string
	Location              string
	Model                 string
	ModelNumber           string
	Status                string
	IsGateway             bool
	IsPrimaryNode         bool
	IPAddress             string
	MACAddress            string
	OSVersion             string
	ConnectedClientsCount int64
	Wired                 bool
	MeshQualityBars       int64
	LEDOn                 bool
	LEDBrightness         int64
	LastReboot            *time.Time
}

// SupportsNightlight reports whether the node has a nightlight. Only the
// Beacon model does.
func (e Eero) SupportsNightlight() bool {
	return strings.Contains(strings.ToLower(e.Model), "beacon")
}

// Role is "gateway" for the node holding the WAN link and "leaf" otherwise.
func (e Eero) Role() string {
	if e.IsGateway {
		return "gateway"
	}
	return "leaf"
}

// ConnectionType is "wired" or "wireless" backhaul.
func (e Eero) ConnectionType() string {
	if e.Wired {
		return "wired"
	}
	return "wireless"
}

type rawEero struct {
	URL                   Text   `json:"url"`
	Serial                Text   `json:"serial"`
	Name                  Text   `json:"name"`
	Location              Text   `json:"location"`
	Model                 Text   `json:"model"`
	ModelNumber           Text   `json:"model_number"`
	Status                Text   `json:"status"`
	Gateway               Flag   `json:"gateway"`
	IsGateway             Flag   `json:"is_gateway"`
	IsPrimaryNode         Flag   `json:"is_primary_node"`
	IPAddress             Text   `json:"ip_address"`
	MACAddress            Text   `json:"mac_address"`
	OSVersion             Text   `json:"os_version"`
	OS                    Text   `json:"os"`
	ConnectedClientsCount Number `json:"connected_clients_count"`
	Wired                 Flag   `json:"wired"`
	MeshQualityBars       Number `json:"mesh_quality_bars"`
	LEDOn                 Flag   `json:"led_on"`
	LEDBrightness         Number `json:"led_brightness"`
	LastReboot            Text   `json:"last_reboot"`
}

// ParseEero maps a node payload.
func ParseEero(data json.RawMessage) (Eero, error) {
	var raw rawEero
	if err := json.Unmarshal(data, &raw); err != nil {
		return Eero{}, fmt.Errorf("decode eero: %w", err)
	}
	return Eero{
		ID:                    IDFromURL(string(raw.URL)),
		Serial:                string(raw.Serial),
		Name:                  firstNonEmpty(raw.Name, raw.Location),
		Location:              string(raw.Location),
		Model:                 string(raw.Model),
		ModelNumber:           string(raw.ModelNumber),
		Status:                firstNonEmpty(raw.Status, "unknown"),
		IsGateway:             bool(raw.Gateway || raw.IsGateway),
		IsPrimaryNode:         bool(raw.IsPrimaryNode),
		IPAddress:             string(raw.IPAddress),
		MACAddress:            string(raw.MACAddress),
		OSVersion:             firstNonEmpty(raw.OSVersion, raw.OS),
		ConnectedClientsCount: int64(raw.ConnectedClientsCount),
		Wired:                 bool(raw.Wired),
		MeshQualityBars:       int64(raw.MeshQualityBars),
		LEDOn:                 bool(raw.LEDOn),
		LEDBrightness:         int64(raw.LEDBrightness),
		LastReboot:            parseTime(raw.LastReboot),
	}, nil
}

// ParseEeros maps a node list payload.
func ParseEeros(data json.RawMessage) ([]Eero, error) {
	return parseList(data, "eeros", ParseEero)
}

// Record implements output.Recorder.
func (e Eero) Record() output.Record {
	return output.Record{
		{Key: "id", Value: e.ID},
		{Key: "name", Value: optional(e.Name)},
		{Key: "serial", Value: optional(e.Serial)},
		{Key: "location", Value: optional(e.Location)},
		{Key: "model", Value: optional(e.Model)},
		{Key: "model_number", Value: optional(e.ModelNumber)},
		{Key: "status", Value: e.Status},
		{Key: "role", Value: e.Role()},
		{Key: "is_gateway", Value: e.IsGateway},
		{Key: "is_primary_node", Value: e.IsPrimaryNode},
		{Key: "ip_address", Value: optional(e.IPAddress)},
		{Key: "mac_address", Value: optional(e.MACAddress)},
		{Key: "os_version", Value: optional(e.OSVersion)},
		{Key: "connected_clients_count", Value: e.ConnectedClientsCount},
		{Key: "connection_type", Value: e.ConnectionType()},
		{Key: "mesh_quality_bars", Value: e.MeshQualityBars},
		{Key: "led_on", Value: e.LEDOn},
		{Key: "led_brightness", Value: e.LEDBrightness},
		{Key: "nightlight_supported", Value: e.SupportsNightlight()},
		{Key: "last_reboot", Value: optionalTime(e.LastReboot)},
	}
}
