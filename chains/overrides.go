package chains

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Override carries the per-network fields an operator may replace at runtime.
// Zero values leave the built-in configuration untouched.
type Override struct {
	RPCURL        string `yaml:"rpcUrl"`
	BlockExplorer string `yaml:"blockExplorer"`

	Contracts struct {
		MockUSDC            string `yaml:"mockUsdc"`
		RWAManager          string `yaml:"rwaManager"`
		TokenFactory        string `yaml:"tokenFactory"`
		PrimaryDistribution string `yaml:"primaryDistribution"`
		RFQ                 string `yaml:"rfq"`
	} `yaml:"contracts"`
}

type overrideFile struct {
	Networks map[string]Override `yaml:"networks"`
}

// ApplyOverrides reads a YAML file and patches the built-in network table.
// Unknown network keys are rejected so typos surface at startup.
func ApplyOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read network overrides %s: %w", path, err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse network overrides %s: %w", path, err)
	}

	for key, ov := range file.Networks {
		net, err := Get(key)
		if err != nil {
			return fmt.Errorf("network overrides: %w", err)
		}
		if ov.RPCURL != "" {
			net.RPCURL = ov.RPCURL
		}
		if ov.BlockExplorer != "" {
			net.BlockExplorer = ov.BlockExplorer
		}
		if ov.Contracts.MockUSDC != "" {
			net.Contracts.MockUSDC = ov.Contracts.MockUSDC
		}
		if ov.Contracts.RWAManager != "" {
			net.Contracts.RWAManager = ov.Contracts.RWAManager
		}
		if ov.Contracts.TokenFactory != "" {
			net.Contracts.TokenFactory = ov.Contracts.TokenFactory
		}
		if ov.Contracts.PrimaryDistribution != "" {
			net.Contracts.PrimaryDistribution = ov.Contracts.PrimaryDistribution
		}
		if ov.Contracts.RFQ != "" {
			net.Contracts.RFQ = ov.Contracts.RFQ
		}
		networks[net.Key] = net
	}
	return nil
}
