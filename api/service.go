package api

import (
	"fmt"

	"Moulinette/internal/config"
	"Moulinette/internal/serviceiface"
)

type GatewayService struct {
	config map[string]interface{}
}

func NewGatewayService(cfg map[string]interface{}) serviceiface.Service {
	return &GatewayService{config: cfg}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	targets := []string{fmt.Sprintf("http://localhost%s", config.InventoryAddr)}
	if s.config != nil {
		if raw, ok := s.config["inventory_targets"].([]interface{}); ok && len(raw) > 0 {
			targets = targets[:0]
			for _, t := range raw {
				if str, ok := t.(string); ok && str != "" {
					targets = append(targets, str)
				}
			}
		}
	}
	go StartGateway(targets)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
