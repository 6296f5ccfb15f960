package main

import "github.com/akozadaev/go_f1_dnf_analytics/cmd/f1tool/cmd"

func main() {
	cmd.Execute()
}
