package cli

import (
	"github.com/IvanChernomyrdin/go-users-api/internal/agent/api"
	"github.com/IvanChernomyrdin/go-users-api/internal/agent/memory"
)

// для тестов
var (
	NewAPIClient      = api.NewClient
	SaveUsersToFile   = memory.SaveToFile
	LoadUsersFromFile = memory.LoadFromFile
)
