package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ops-assistant/internal/di"
	"ops-assistant/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	task := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if task == "" {
		fmt.Println("\nEnter a task for the assistant:")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatal("failed to read input: ", err)
		}
		task = strings.TrimSpace(line)
	}
	if task == "" {
		log.Fatal("no task given")
	}

	timeout := time.Duration(envService.GetInt("TASK_TIMEOUT_SECONDS", 300)) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	container, err := di.NewContainer(ctx, di.ConfigFromEnv(envService))
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task)

	result, err := container.Pipeline.Run(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err)
		fmt.Printf("\nTask failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nSUMMARY:")
	fmt.Println(result.Summary)
	fmt.Printf("\ncomplete=%v confidence=%.2f\n", result.IsComplete, result.ConfidenceScore)
	for _, issue := range result.Issues {
		fmt.Println("  issue:", issue)
	}

	if len(result.Data) > 0 {
		if data, err := json.MarshalIndent(result.Data, "", "  "); err == nil {
			fmt.Println("\nCOLLECTED DATA:")
			fmt.Println(string(data))
		}
	}
}
