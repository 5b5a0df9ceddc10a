package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Interactive client for exercising the planner over the REST surface.
// Usage:
//
//	go run ./cmd/simulate -- http://localhost:3000 <access-token>
type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Data struct {
		TripId  string `json:"trip_id"`
		Reply   string `json:"reply"`
		IsFinal bool   `json:"is_final"`
	} `json:"data"`
	Message string `json:"message"`
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		log.Fatal("usage: simulate <base-url> <access-token>")
	}
	baseURL, token := strings.TrimRight(args[0], "/"), args[1]

	bot := color.New(color.FgCyan, color.Bold)
	info := color.New(color.FgYellow)
	errC := color.New(color.FgRed)

	fmt.Println("=== TravelOrbit Planner Simulation ===")
	info.Println("Type a message and press enter. 'quit' exits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYOU: ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "quit" || text == "exit" {
			return
		}

		start := time.Now()
		res, err := sendChat(baseURL, token, text)
		if err != nil {
			errC.Printf("Error: %v\n", err)
			continue
		}

		bot.Printf("PLANNER (%v): ", time.Since(start).Round(time.Millisecond))
		fmt.Println(res.Data.Reply)
		if res.Data.IsFinal {
			info.Printf("Trip %s is finalized. Pay via POST /api/payments/checkout.\n", res.Data.TripId)
		}
	}
}

func sendChat(baseURL, token, text string) (*chatResponse, error) {
	body, _ := json.Marshal(chatRequest{Message: text})
	req, err := http.NewRequest("POST", baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode, string(raw))
	}

	var res chatResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
