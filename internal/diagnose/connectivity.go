package diagnose

import (
	"context"

	"github.com/fulviofreitas/eeroctl/internal/output"
)

// Connectivity summarises WAN and mesh state for one network.
type Connectivity struct {
	NetworkID    string
	NetworkName  string
	Status       string
	PublicIP     string
	ISPName      string
	Gateway      string
	GatewayUp    bool
	NodesTotal   int
	NodesHealthy int
}

// Record implements output.Recorder.
func (c Connectivity) Record() output.Record {
	var publicIP, isp, gateway any
	if c.PublicIP != "" {
		publicIP = c.PublicIP
	}
	if c.ISPName != "" {
		isp = c.ISPName
	}
	if c.Gateway != "" {
		gateway = c.Gateway
	}
	return output.Record{
		{Key: "network_id", Value: c.NetworkID},
		{Key: "network_name", Value: c.NetworkName},
		{Key: "status", Value: c.Status},
		{Key: "public_ip", Value: publicIP},
		{Key: "isp_name", Value: isp},
		{Key: "gateway", Value: gateway},
		{Key: "gateway_online", Value: c.GatewayUp},
		{Key: "nodes_total", Value: c.NodesTotal},
		{Key: "nodes_healthy", Value: c.NodesHealthy},
	}
}

// Warnings lists conditions worth surfacing next to the data.
func (c Connectivity) Warnings() []string {
	out := []string{}
	if c.Status != "online" {
		out = append(out, "network status is "+c.Status)
	}
	if c.Gateway == "" {
		out = append(out, "no gateway node found")
	} else if !c.GatewayUp {
		out = append(out, "gateway "+c.Gateway+" is not healthy")
	}
	if c.NodesHealthy < c.NodesTotal {
		out = append(out, "some mesh nodes are not healthy")
	}
	return out
}

// CheckConnectivity reads the network and its nodes. Unlike Collect, any
// API failure is returned.
func CheckConnectivity(ctx context.Context, api API, networkID string) (Connectivity, error) {
	n, err := api.Network(ctx, networkID)
	if err != nil {
		return Connectivity{}, err
	}
	eeros, err := api.Eeros(ctx, networkID)
	if err != nil {
		return Connectivity{}, err
	}
	c := Connectivity{
		NetworkID:   networkID,
		NetworkName: n.Name,
		Status:      n.Status,
		PublicIP:    n.PublicIP,
		ISPName:     n.ISPName,
		NodesTotal:  len(eeros),
	}
	for _, e := range eeros {
		if NodeHealthy(e) {
			c.NodesHealthy++
		}
	}
	if gw, ok := Gateway(eeros); ok {
		c.Gateway = gw.Name
		c.GatewayUp = NodeHealthy(gw)
	}
	return c, nil
}
