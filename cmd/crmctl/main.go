package main

import (
	"os"

	"github.com/mrwaste/wastecrm/cmd/crmctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
