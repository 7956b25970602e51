// Package main содержит точку входа консольного клиента usersctl.
//
// Пакет передаёт версию и дату сборки в CLI-слой приложения.
package main

import "github.com/IvanChernomyrdin/go-users-api/internal/agent/cli"

var (
	// buildVersion задаётся при сборке через -ldflags. По умолчанию "dev".
	buildVersion = "dev"
	// buildDate задаётся при сборке через -ldflags. По умолчанию "unknown".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
