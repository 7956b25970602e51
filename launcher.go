package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/IvanChernomyrdin/go-users-api/internal/agent/api"
	"github.com/IvanChernomyrdin/go-users-api/internal/agent/cli"
)

// Локальный запуск: сервер в фоне, сборка usersctl, ожидание health-check.
func main() {
	fmt.Println("Запуск Users API...")

	clientName := "usersctl"
	if runtime.GOOS == "windows" {
		clientName = "usersctl.exe"
	}

	// запускаем сервер на фоне
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("Ошибка запуска сервера: %v\n", err)
		return
	}

	// собираем клиента
	if _, err := os.Stat(clientName); os.IsNotExist(err) {
		fmt.Println("Сборка клиента...")
		build := exec.Command("go", "build", "-o", clientName, "./cmd/usersctl")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("Ошибка сборки клиента: %v\n", err)
		}
	}

	serverURL := cli.DefaultServerURL
	if port := os.Getenv("PORT"); port != "" {
		serverURL = "http://127.0.0.1:" + port
	}
	if err := waitHealthy(serverURL, 30*time.Second); err != nil {
		fmt.Printf("Сервер не ответил: %v\n", err)
	} else {
		fmt.Println("Сервер запущен")
	}

	fmt.Printf("Данный терминал не закрывай. Открой новый и запускай: ./%s --server %s list\n", clientName, serverURL)

	_ = server.Wait()
}

// waitHealthy опрашивает GET / пока сервер не ответит или не выйдет timeout.
func waitHealthy(serverURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := api.NewClient(serverURL)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := c.Health(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
