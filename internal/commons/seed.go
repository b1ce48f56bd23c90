package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Seed is the initial data applied when the database is refreshed.
type Seed struct {
	Roles    []SeedRole    `yaml:"roles"`
	Users    []SeedUser    `yaml:"users"`
	Products []SeedProduct `yaml:"products"`
}

type SeedRole struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type SeedUser struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	RoleID    int    `yaml:"roleId"`
}

type SeedProduct struct {
	LotNumber         string `yaml:"lotNumber"`
	Name              string `yaml:"name"`
	Price             string `yaml:"price"`
	AvailableQuantity int    `yaml:"availableQuantity"`
	IntakeDate        string `yaml:"intakeDate"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	return &seed, nil
}
