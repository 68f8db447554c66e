package main

import "missionlog/cmd/ml/root"

func main() {
	root.Execute()
}
