package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

const goodbye = "Goodbye! Have a great day."

func runChat(parent context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	banner := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(banner)
	fmt.Println("Asha AI - Your Career Assistant")
	fmt.Println(banner)
	fmt.Println("\nType 'help' for available commands or 'exit' to quit.")
	printTools(a)
	printAssistant("Hi! I'm Asha AI, your career assistant. How can I help you today?")

	lines := make(chan string)
	scanner := bufio.NewScanner(os.Stdin)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("\nYou: ")

		var input string
		select {
		case <-ctx.Done():
			fmt.Println()
			printAssistant(goodbye)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				printAssistant(goodbye)
				return scanner.Err()
			}
			input = strings.TrimSpace(line)
		}
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			printAssistant(goodbye)
			return nil
		case "help":
			fmt.Println("\nAvailable commands:")
			fmt.Println("- help: Show this help message")
			fmt.Println("- tools: List available tools")
			fmt.Println("- exit/quit/bye: Exit the program")
			fmt.Println("- clear: Clear the screen")
			fmt.Println("- debug: Toggle debug mode")
			continue
		case "tools":
			printTools(a)
			continue
		case "clear":
			fmt.Print("\033[2J\033[H")
			continue
		case "debug":
			if a.toggleDebug() {
				fmt.Println("\nDebug mode enabled")
			} else {
				fmt.Println("\nDebug mode disabled")
			}
			continue
		}

		printAssistant(a.orch.ProcessQuery(ctx, input))
	}
}

func printTools(a *app) {
	fmt.Println("\nAvailable tools:")
	for _, t := range a.registry.All() {
		fmt.Printf("- %s: %s\n", colorize(colorBold, t.Name()), t.Description())
	}
}

func printAssistant(msg string) {
	fmt.Printf("\n%s %s\n", colorize(colorCyan, "Asha AI:"), msg)
}
