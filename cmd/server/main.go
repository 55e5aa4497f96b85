package main

import (
	"os"

	"github.com/spf13/pflag"

	"genai-chat/internal/app"
)

//	@title			GenAI Chat API
//	@version		1.0
//	@description	Chat, guardrails and transcript API in front of OCI Generative AI.
//	@BasePath		/api
func main() {
	configFile := pflag.StringP("config", "c", "", "config file (defaults to ./config.yaml when present)")
	pflag.Parse()

	os.Exit(app.Run(*configFile))
}
