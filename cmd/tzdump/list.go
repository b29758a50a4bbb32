package main

import (
	"context"
	"fmt"

	"github.com/ngrash/go-zdump/internal/config"
)

// ListCmd prints the zone names of the zone directory.
type ListCmd struct{}

func (c *ListCmd) Run(cfg *config.Config) error {
	zones, err := newSource(cfg).Zones(context.Background())
	if err != nil {
		return err
	}
	for _, z := range zones {
		fmt.Println(z)
	}
	return nil
}
