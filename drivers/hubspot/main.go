package main

import (
	taphubspot "github.com/streamzip/tap-hubspot"
	driver "github.com/streamzip/tap-hubspot/drivers/hubspot/internal"
)

func main() {
	taphubspot.RegisterDriver(driver.NewHubspot())
}
