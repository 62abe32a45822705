package service

import (
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/model"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/store"
	"github.com/jhofstede/Data-Quality-Tool-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	artifacts store.ArtifactStore
}

// NewSystemService creates a new SystemService
func NewSystemService(artifacts store.ArtifactStore) *SystemService {
	return &SystemService{
		artifacts: artifacts,
	}
}

// CheckHealth checks that the artifact store is reachable
func (s *SystemService) CheckHealth() error {
	_, err := s.artifacts.Keys()
	return err
}

// CheckVersion returns application version and feature availability
func (s *SystemService) CheckVersion() model.VersionInfo {
	return model.VersionInfo{
		AppVersion: version.Version,
		Features: map[string]bool{
			"artifact_download":  true,
			"log_download":       true,
			"artifact_retention": true,
		},
	}
}
